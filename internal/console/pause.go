package console

import (
	"bufio"
	"fmt"
	"io"
)

// WaitForKey prints prompt and blocks until a newline is read from in
func WaitForKey(out io.Writer, in io.Reader, prompt string) {
	_, _ = fmt.Fprint(out, prompt)
	_, _ = bufio.NewReader(in).ReadBytes('\n')
}
