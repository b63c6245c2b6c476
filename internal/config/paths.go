package config

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// expandPath expands environment variables and a leading ~ in p. On Windows
// %VAR% references and a ~\ prefix are recognized too.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if runtime.GOOS == "windows" {
		p = expandPercentVars(p)
	}
	return expandHome(p)
}

func expandHome(p string) string {
	rest, ok := strings.CutPrefix(p, "~")
	if !ok {
		return p
	}
	if rest != "" && rest[0] != '/' && (runtime.GOOS != "windows" || rest[0] != '\\') {
		// ~user and ~file are left alone.
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, rest)
}

var percentVar = regexp.MustCompile(`%([^%]+)%`)

// expandPercentVars replaces %VAR% with its value, leaving unknown names as is.
func expandPercentVars(p string) string {
	return percentVar.ReplaceAllStringFunc(p, func(m string) string {
		if v, ok := os.LookupEnv(m[1 : len(m)-1]); ok {
			return v
		}
		return m
	})
}
