package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/trimble-oss/trcphotometry/pkg/api"
	"github.com/trimble-oss/trcphotometry/pkg/core"
	"github.com/trimble-oss/trcphotometry/pkg/core/dbutil"
	"github.com/trimble-oss/trcphotometry/pkg/trcdb"
	"github.com/trimble-oss/trcphotometry/pkg/trcdb/engine"
	eUtils "github.com/trimble-oss/trcphotometry/pkg/utils"
	"github.com/trimble-oss/trcphotometry/pkg/utils/config"

	"golang.org/x/term"
)

const sourcePasswordEnv = "TRCPHOT_SOURCE_PASSWORD"

// Runs photometry queries (fluxToAbMagSigma and friends) over seed tables
// or tables imported from an external mysql/sqlserver source.
func main() {
	fmt.Fprintln(os.Stderr, "Version: "+"1.0")
	flagset := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flagset.Usage = func() {
		fmt.Fprintf(flagset.Output(), "Usage of %s:\n", os.Args[0])
		flagset.PrintDefaults()
	}
	logFilePtr := flagset.String("log", "./trcphot.log", "Output path for log file")
	dbNamePtr := flagset.String("db", "photometry", "Name of the in-memory database")
	seedPtr := flagset.String("seed", "", "Comma separated seed files to load")
	queryPtr := flagset.String("query", "", "Query to run, e.g. SELECT fluxToAbMagSigma(rFlux_PS, rFlux_PS_Sigma) FROM Object")
	sourceURLPtr := flagset.String("sourceURL", "", "jdbc url of a source database, e.g. jdbc:mysql://host:3306/db")
	sourceUserPtr := flagset.String("sourceUser", "", "Source database user")
	sourceQueryPtr := flagset.String("sourceQuery", "", "Query selecting rows to import from the source database")
	sourceTablePtr := flagset.String("sourceTable", "", "Table name for imported rows")
	sourceCertPtr := flagset.String("sourceCert", "", "PEM file trusted for the source connection")
	servePtr := flagset.String("serve", "", "Address to serve the photometry api on, e.g. :9012")
	flagset.Parse(os.Args[1:])

	f, err := os.OpenFile(*logFilePtr, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file %s: %v\n", *logFilePtr, err)
		os.Exit(1)
	}
	logger := log.New(f, "[trcphot]", log.LstdFlags)

	driverConfig := &config.DriverConfig{
		CoreConfig: &core.CoreConfig{
			IsShell:       true,
			ExitOnFailure: true,
			Log:           logger,
		},
		SeedPaths:      eUtils.SplitList(seedPtr),
		SourceURL:      *sourceURLPtr,
		SourceUser:     *sourceUserPtr,
		SourceQuery:    *sourceQueryPtr,
		SourceTable:    *sourceTablePtr,
		SourceCertName: *sourceCertPtr,
	}

	if eUtils.RefLength(queryPtr) == 0 && eUtils.RefLength(servePtr) == 0 {
		flagset.Usage()
		eUtils.LogAndSafeExit(driverConfig.CoreConfig, "Either -query or -serve is required.", 1)
		return
	}

	te, err := trcdb.CreateEngine(driverConfig, *dbNamePtr)
	eUtils.CheckError(driverConfig.CoreConfig, err, true)

	if driverConfig.HasSource() {
		err = importSource(driverConfig, te)
		eUtils.LogErrorObject(driverConfig.CoreConfig, err, true)
	}

	queryLock := &sync.Mutex{}
	if eUtils.RefLength(queryPtr) > 0 {
		_, columns, matrix, err := trcdb.Query(te, *queryPtr, queryLock)
		if err != nil {
			eUtils.LogErrorAndSafeExit(driverConfig.CoreConfig, err, 1)
			return
		}
		printResult(os.Stdout, columns, matrix)
	}

	if eUtils.RefLength(servePtr) > 0 {
		server := &http.Server{
			Addr:              *servePtr,
			Handler:           api.NewServer(te, queryLock).Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		eUtils.LogInfo(driverConfig.CoreConfig, "Listening for photometry requests on "+*servePtr)
		logger.Fatal(server.ListenAndServe())
	}
}

func importSource(driverConfig *config.DriverConfig, te *engine.TierceronEngine) error {
	conn, err := dbutil.OpenDirectConnection(driverConfig, driverConfig.SourceURL, driverConfig.SourceUser, sourcePassword)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	count, err := trcdb.ImportTable(ctx, conn, te, driverConfig.SourceQuery, driverConfig.SourceTable)
	if err != nil {
		return err
	}
	eUtils.LogInfo(driverConfig.CoreConfig, fmt.Sprintf("Imported %d rows into %s", count, driverConfig.SourceTable))
	return nil
}

// sourcePassword reads the password from the environment, falling back to
// an interactive prompt.
func sourcePassword() (string, error) {
	if password, ok := os.LookupEnv(sourcePasswordEnv); ok {
		return password, nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New(sourcePasswordEnv + " is not set and stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, "Source password: ")
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(password), nil
}

func printResult(out io.Writer, columns []string, matrix [][]any) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if len(columns) > 0 {
		fmt.Fprintln(w, strings.Join(columns, "\t"))
	}
	for _, row := range matrix {
		cells := make([]string, len(row))
		for i, cell := range row {
			if cell == nil {
				cells[i] = "NULL"
			} else {
				cells[i] = fmt.Sprint(cell)
			}
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()
}
