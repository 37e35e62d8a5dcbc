package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Store bool
	Merge bool
	Write bool
	Patch bool
	Eval  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Store = boolEnv("NOTELOG_DEBUG_STORE")
	d.Merge = boolEnv("NOTELOG_DEBUG_MERGE")
	d.Write = boolEnv("NOTELOG_DEBUG_WRITE")
	d.Patch = boolEnv("NOTELOG_DEBUG_PATCH")
	d.Eval = boolEnv("NOTELOG_DEBUG_EVAL")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Store() bool {
	return d.Store
}
func Merge() bool {
	return d.Merge
}
func Write() bool {
	return d.Write
}
func Patch() bool {
	return d.Patch
}
func Eval() bool {
	return d.Eval
}
