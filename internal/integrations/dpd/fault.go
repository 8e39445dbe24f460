package dpd

import (
	"fmt"

	"github.com/beevik/etree"
)

// Fault is a structured application error returned by the carrier inside a
// SOAP fault envelope. Code and Message are taken from the first two entries
// of the fault detail list; when the detail carries no code, the fault's own
// faultcode/faultstring pair is used instead.
type Fault struct {
	Op      string
	Code    string
	Message string
}

func (f *Fault) Error() string {
	if f.Code != "" {
		return fmt.Sprintf("dpd %s fault %s: %s", f.Op, f.Code, f.Message)
	}
	return fmt.Sprintf("dpd %s fault: %s", f.Op, f.Message)
}

// StatusError is a transport-level error: the carrier answered with a
// non-200 status and an operation-specific error code/message pair.
type StatusError struct {
	Op      string
	Code    string
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("dpd %s error %s: %s", e.Op, e.Code, e.Message)
}

// parseFault extracts a Fault from a SOAP fault document. Returns nil when
// the document carries no fault element.
func parseFault(op string, doc *etree.Document) *Fault {
	fault := doc.FindElement("//Fault")
	if fault == nil {
		return nil
	}

	f := &Fault{Op: op}
	if detail := fault.FindElement("detail"); detail != nil {
		if entries := detail.ChildElements(); len(entries) > 0 {
			fields := entries[0].ChildElements()
			if len(fields) > 0 {
				f.Code = fields[0].Text()
			}
			if len(fields) > 1 {
				f.Message = fields[1].Text()
			}
		}
	}
	if f.Code == "" {
		f.Code = childText(fault, "faultcode")
		f.Message = childText(fault, "faultstring")
	}
	return f
}
