package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/trimble-oss/trcphotometry/pkg/photometry/udf"
	"github.com/trimble-oss/trcphotometry/pkg/trcdb"
	"github.com/trimble-oss/trcphotometry/pkg/trcdb/engine"
	eUtils "github.com/trimble-oss/trcphotometry/pkg/utils"

	rtr "github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// Server answers photometry requests against one engine.
type Server struct {
	te        *engine.TierceronEngine
	queryLock *sync.Mutex
}

func NewServer(te *engine.TierceronEngine, queryLock *sync.Mutex) *Server {
	return &Server{te: te, queryLock: queryLock}
}

type functionResponse struct {
	Function string   `json:"function"`
	Result   *float64 `json:"result"`
}

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Table   string   `json:"table"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Router routes
//
//	GET  /photometry/:function?args=a,b
//	POST /query
func (s *Server) Router() *rtr.Router {
	router := rtr.New()
	router.GET("/photometry/:function", s.evaluate)
	router.POST("/query", s.query)
	return router
}

// Handler wraps Router with the permissive CORS policy used by the web tools.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return c.Handler(s.Router())
}

func (s *Server) evaluate(w http.ResponseWriter, r *http.Request, ps rtr.Params) {
	s.logRequest(r)
	desc, ok := udf.Lookup(ps.ByName("function"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown function " + ps.ByName("function")})
		return
	}

	var args []string
	if raw := r.URL.Query().Get("args"); raw != "" {
		args = strings.Split(raw, ",")
	}
	described := make([]udf.Arg, len(args))
	for i := range described {
		described[i] = udf.Arg{Kind: udf.KindString, Const: true}
	}
	if _, err := desc.Init(described); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	values := make([]float64, len(args))
	for i, arg := range args {
		if strings.EqualFold(strings.TrimSpace(arg), "null") {
			writeJSON(w, http.StatusOK, functionResponse{Function: desc.Name})
			return
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "argument " + strconv.Itoa(i+1) + " is not a number"})
			return
		}
		values[i] = v
	}

	response := functionResponse{Function: desc.Name}
	if result, defined := desc.Eval(values).Float64(); defined {
		response.Result = &result
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) query(w http.ResponseWriter, r *http.Request, _ rtr.Params) {
	s.logRequest(r)
	var request queryRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || strings.TrimSpace(request.Query) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "expected {\"query\": \"...\"}"})
		return
	}
	tableName, columns, matrix, err := trcdb.Query(s.te, request.Query, s.queryLock)
	if err != nil {
		if s.canLog() {
			eUtils.LogErrorObject(s.te.Config.CoreConfig, err, false)
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, queryResponse{Table: tableName, Columns: columns, Rows: matrix})
}

func (s *Server) canLog() bool {
	return s.te.Config.CoreConfig != nil && s.te.Config.CoreConfig.Log != nil
}

func (s *Server) logRequest(r *http.Request) {
	if s.canLog() {
		eUtils.LogInfo(s.te.Config.CoreConfig, "Incoming request "+r.Method+" "+r.URL.String()+" from "+r.RemoteAddr)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
