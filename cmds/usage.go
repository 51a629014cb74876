package cmds

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stderr)
}

func (p *Executor) WriteUsage(w io.Writer) {
	writeCommands(w, p.commands, 0)
}

func writeCommands(w io.Writer, commands map[string]*Command, depth int) {
	// aliases share the command value, print each command once
	names := make(map[*Command][]string)
	for name, cmd := range commands {
		names[cmd] = append(names[cmd], name)
	}
	var cmdNames []string
	byName := make(map[string]*Command)
	for cmd, ns := range names {
		slices.Sort(ns)
		joined := strings.Join(ns, ", ")
		cmdNames = append(cmdNames, joined)
		byName[joined] = cmd
	}
	slices.Sort(cmdNames)

	indent := strings.Repeat("  ", depth)
	for _, name := range cmdNames {
		cmd := byName[name]
		if cmd == nil {
			fmt.Fprintf(w, "%s%s\n", indent, name)
			continue
		}
		line := name
		if len(cmd.Params) > 0 {
			line += " " + strings.Join(cmd.Params, " ")
		}
		if cmd.Description != "" {
			fmt.Fprintf(w, "%s%s\t%s\n", indent, line, cmd.Description)
		} else {
			fmt.Fprintf(w, "%s%s\n", indent, line)
		}
		if len(cmd.Subs) > 0 {
			subs := maps.Clone(cmd.Subs)
			writeCommands(w, subs, depth+1)
		}
	}
}
