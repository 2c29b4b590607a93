package logging

import (
	"bytes"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	callerKey  = "caller"
	timeLayout = "2006/01/02 15:04:05"
)

// Formatter renders "time file[line:N] LEVEL: message" followed by any
// structured fields as sorted key=value pairs.
type Formatter struct{}

func (f *Formatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(e.Time.Format(timeLayout))
	b.WriteByte(' ')

	frame := e.Caller
	if fr, ok := e.Data[callerKey].(*runtime.Frame); ok {
		frame = fr
	}
	if frame != nil {
		fmt.Fprintf(&b, "%s[line:%d] ", filepath.Base(frame.File), frame.Line)
	}
	fmt.Fprintf(&b, "%s: %s", strings.ToUpper(e.Level.String()), e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		if k != callerKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}
