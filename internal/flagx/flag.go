// Package flagx holds helpers for parsing a subset of command-line flags
// without tripping over flags owned by other parsers.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs keeps only the flags named in allowed (with their values) from
// args. Both "-f value" and "-f=value" forms are recognized. A token that
// starts with "-" is never consumed as a value.
//
// The result is never nil.
func FilterArgs(args []string, allowed []string) []string {
	known := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		known[f] = struct{}{}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, keep := known[name]; keep {
				out = append(out, arg)
			}
			continue
		}

		if _, keep := known[arg]; !keep {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// ConfigFileFlag returns the config file path passed via -c or -config in
// args (usually os.Args[1:]). The last occurrence wins; "" when absent.
func ConfigFileFlag(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}
