package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

// Lifecycle colours shared by every listing
var (
	good    = color.New(color.FgGreen, color.Bold).SprintFunc()
	paused  = color.New(color.FgYellow, color.Bold).SprintFunc()
	bad     = color.New(color.FgRed, color.Bold).SprintFunc()
	pending = color.New(color.FgCyan, color.Bold).SprintFunc()
	faint   = color.New(color.FgHiBlack).SprintFunc()
)

// colorState paints an OCI lifecycle state. Unknown states are left as is.
func colorState(state string) string {
	switch strings.ToUpper(state) {
	case "RUNNING", "AVAILABLE", "ACTIVE":
		return good(state)
	case "STOPPED", "INACTIVE":
		return paused(state)
	case "TERMINATED", "TERMINATING", "FAILED", "DELETED":
		return bad(state)
	case "PROVISIONING", "STARTING", "STOPPING", "CREATING", "UPDATING", "BACKUP_IN_PROGRESS":
		return pending(state)
	case "":
		return faint("-")
	}
	return state
}

// console writes pterm output to a fixed writer so commands can be tested
type console struct {
	out io.Writer
}

func (c console) table(header []string, rows [][]string) error {
	data := pterm.TableData{header}
	data = append(data, rows...)
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.out, s)
	return err
}

func (c console) success(format string, a ...any) {
	fmt.Fprint(c.out, pterm.Success.Sprintfln(format, a...))
}

func (c console) info(format string, a ...any) {
	fmt.Fprint(c.out, pterm.Info.Sprintfln(format, a...))
}

func (c console) warn(format string, a ...any) {
	fmt.Fprint(c.out, pterm.Warning.Sprintfln(format, a...))
}

func (c console) fail(format string, a ...any) {
	fmt.Fprint(c.out, pterm.Error.Sprintfln(format, a...))
}

// empty prints the "nothing found" line used by every listing
func (c console) empty(noun string) {
	c.info("No %s found.", noun)
}

// abbreviate shortens an OCID to its type and the last characters of its id
func abbreviate(ocid string) string {
	parts := strings.Split(ocid, ".")
	if len(parts) < 5 || len(ocid) <= 32 {
		return ocid
	}
	id := parts[len(parts)-1]
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return parts[0] + "." + parts[1] + "..." + id
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
