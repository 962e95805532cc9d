// Package main demonstrates usage of the xgx-report package, including a
// custom colorized Handler installed through the construction hook.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	xgxreport "github.com/xgx-io/xgx-report"
)

// colorHandler renders reports with a highlighted headline and a dimmed
// cause section. It lives entirely on the consumer side of the Handler
// interface; the core knows nothing about colors.
type colorHandler struct {
	headline *color.Color
	cause    *color.Color
}

func newColorHandler(err error) xgxreport.Handler {
	return &colorHandler{
		headline: color.New(color.FgRed, color.Bold),
		cause:    color.New(color.FgHiBlack),
	}
}

func (h *colorHandler) Display(err error, w io.Writer) {
	_, _ = h.headline.Fprint(w, err.Error())
}

func (h *colorHandler) Debug(err error, w io.Writer) {
	_, _ = h.headline.Fprint(w, err.Error())
	causes := xgxreport.NewChain(err).Collect()
	if len(causes) <= 1 {
		return
	}
	_, _ = io.WriteString(w, "\n\nCaused by:")
	for i, cause := range causes[1:] {
		_, _ = h.cause.Fprintf(w, "\n    %d: %s", i, cause.Error())
	}
}

func loadConfig(path string) *xgxreport.Report {
	err := errors.New("open " + path + ": no such file or directory")
	return xgxreport.New(err).
		Wrap("reading service configuration").
		Wrap("starting api server")
}

func main() {
	if err := xgxreport.SetHook(newColorHandler); err != nil {
		fmt.Fprintln(os.Stderr, "hook:", err)
	}

	r := loadConfig("/etc/svc/config.toml")

	// Concise and verbose renderings go through the installed handler.
	fmt.Printf("%v\n\n", r)
	fmt.Printf("%+v\n\n", r)

	// The root cause and every wrap layer stay reachable.
	fmt.Println("root cause:", r.RootCause())
	if msg, ok := xgxreport.DowncastRef[string](r); ok {
		fmt.Println("outermost wrap message:", *msg)
	}
}
