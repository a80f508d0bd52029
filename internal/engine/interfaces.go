package engine

import (
	"github.com/Veraticus/asnreport/internal/report"
)

// TableWriter defines the contract for persisting a rendered report.
type TableWriter interface {
	Write(table report.Table) (path string, err error)
}

// Announcer is told about each report path as soon as it is written.
type Announcer func(path string)
