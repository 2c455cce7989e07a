package classfile

import (
	"io"
	"log"
	"os"
)

// PrintDebugInfo is read once, by this package's init function, to choose
// where Logger writes (os.Stderr if true, io.Discard otherwise). It is false
// at that point, so Logger discards every trace; assigning PrintDebugInfo
// later does not change Logger. The decoder's hot per-instruction path never
// logs; only unusual-but-legal situations (an unknown attribute skipped, a
// legacy StackMap entry accepted) log through Logger.
var PrintDebugInfo = false

// Logger is the package-level diagnostic sink, nil-safe and defaulting to
// io.Discard.
var Logger *log.Logger

func init() {
	w := io.Discard
	if PrintDebugInfo {
		w = os.Stderr
	}
	Logger = log.New(w, "classfile: ", log.Lshortfile)
}
