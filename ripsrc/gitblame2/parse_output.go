package gitblame2

import (
	"fmt"
	"strconv"
	"strings"
)

type line struct {
	CommitHash string
	SourceLine int
	Content    string
	Meta       map[string]string
}

func parseOutput(data string) (res []line, _ error) {
	lines := strings.Split(data, "\n")
	metasByCommit := map[string]map[string]string{}
	for i := 0; i < len(lines); {
		fl := lines[i]
		if fl == "" && i == len(lines)-1 {
			// skip last empty line
			break
		}
		parts := strings.Split(fl, " ")
		if len(parts) < 3 {
			return nil, fmt.Errorf("invalid blame header at line %v: %q", i, fl)
		}
		rl := line{}
		rl.CommitHash = parts[0]
		orig, err := strconv.Atoi(parts[1])
		if err != nil || orig < 1 {
			return nil, fmt.Errorf("invalid source line in blame header at line %v: %q", i, fl)
		}
		rl.SourceLine = orig - 1
		rl.Meta = map[string]string{}
		for {
			i++
			if i >= len(lines) {
				return nil, fmt.Errorf("no content line after blame header %q", fl)
			}
			l := lines[i]
			if l == "" || l[0] != '\t' {
				parts := strings.SplitN(l, " ", 2)
				if len(parts) == 2 {
					rl.Meta[parts[0]] = parts[1]
				} else {
					// i.e. boundary
					rl.Meta[l] = ""
				}
			} else {
				rl.Content = l[1:]
				break
			}
		}
		if len(rl.Meta) == 0 || (len(rl.Meta) == 1 && rl.Meta["filename"] != "") {
			if m, ok := metasByCommit[rl.CommitHash]; ok {
				rl.Meta = m
			}
		} else {
			metasByCommit[rl.CommitHash] = rl.Meta
		}
		res = append(res, rl)
		i++
	}
	return
}
