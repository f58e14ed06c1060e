// Package dbutil opens connections to the external mysql, mariadb and
// sqlserver databases photometry tables are imported from.
package dbutil
