package cmdutils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/profile"
)

var profileModes = map[string]func(*profile.Profile){
	"cpu":   profile.CPUProfile,
	"mem":   profile.MemProfile,
	"trace": profile.TraceProfile,
	"block": profile.BlockProfile,
	"mutex": profile.MutexProfile,
}

// EnableProfiling starts profile of given kind. Call onEnd to write it.
func EnableProfiling(kind string) (onEnd func(), _ error) {
	mode, ok := profileModes[kind]
	if !ok {
		return nil, fmt.Errorf("unexpected profile: %v, use one of cpu, mem, trace, block or mutex", kind)
	}
	dir, err := os.MkdirTemp("", "gitoxide-profile")
	if err != nil {
		return nil, err
	}
	stop := profile.Start(mode, profile.ProfilePath(dir), profile.Quiet).Stop
	onEnd = func() {
		stop()
		fn := filepath.Join(dir, kind+".pprof")
		fmt.Fprintf(os.Stderr, "to view profile, run `go tool pprof --pdf %s`\n", fn)
	}
	return onEnd, nil
}
