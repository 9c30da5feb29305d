package maincmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, src string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "script.rox")
	require.NoError(t, os.WriteFile(file, []byte(src), 0600))
	return file
}

func runCmd(t *testing.T, args ...string) (mainer.ExitCode, string, string) {
	t.Helper()

	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{
		Stdout: &buf,
		Stderr: &ebuf,
	}
	var c Cmd
	code := c.Main(append([]string{"rox"}, args...), stdio)
	return code, buf.String(), ebuf.String()
}

func TestRunFileSuccess(t *testing.T) {
	file := writeScript(t, `
fun greet(name) { print "hello " + name; }
greet("world");
`)
	code, out, eout := runCmd(t, file)
	assert.Equal(t, mainer.Success, code)
	assert.Equal(t, "hello world\n", out)
	assert.Empty(t, eout)
}

func TestRunFileSyntaxError(t *testing.T) {
	file := writeScript(t, `print 1`)
	code, _, eout := runCmd(t, file)
	assert.Equal(t, exitSyntax, code)
	assert.Contains(t, eout, "expected ';'")
}

func TestRunFileResolveError(t *testing.T) {
	file := writeScript(t, `return 1;`)
	code, _, eout := runCmd(t, file)
	assert.Equal(t, exitSyntax, code)
	assert.Contains(t, eout, "cannot return from top-level code")
}

func TestRunFileRuntimeError(t *testing.T) {
	file := writeScript(t, `print "a"; print 1 / 0;`)
	code, out, eout := runCmd(t, file)
	assert.Equal(t, exitRuntime, code)
	assert.Equal(t, "a\n", out)
	assert.Contains(t, eout, "division by zero")
}

func TestUsageErrors(t *testing.T) {
	file := writeScript(t, `print 1;`)

	code, _, eout := runCmd(t, file, file)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, eout, "invalid arguments")

	code, _, _ = runCmd(t, "--tokenize")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCmd(t, "--parse", "--resolve", file)
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCmd(t, "--pos", file)
	assert.Equal(t, exitUsage, code)
}

func TestPhaseFlags(t *testing.T) {
	file := writeScript(t, `var x = 1; print x;`)

	code, out, _ := runCmd(t, "--tokenize", file)
	assert.Equal(t, mainer.Success, code)
	assert.Contains(t, out, "1: var\n")
	assert.Contains(t, out, "1: identifier x\n")
	assert.Contains(t, out, "1: number literal 1\n")
	assert.Contains(t, out, "1: print\n")
	assert.Contains(t, out, "1: end of file\n")

	code, out, _ = runCmd(t, "--parse", file)
	assert.Equal(t, mainer.Success, code)
	assert.Contains(t, out, "chunk\n")
	assert.Contains(t, out, ". var decl x\n")

	code, out, _ = runCmd(t, "--resolve", file)
	assert.Equal(t, mainer.Success, code)
	assert.Contains(t, out, ". . variable x\n")
}

func TestResolvePrintsHops(t *testing.T) {
	file := writeScript(t, `{ var x = 1; print x; }`)
	code, out, _ := runCmd(t, "--resolve", file)
	assert.Equal(t, mainer.Success, code)
	assert.Contains(t, out, "variable x@0\n")
}

func TestVersionAndHelp(t *testing.T) {
	var buf bytes.Buffer
	c := Cmd{BuildVersion: "1.2", BuildDate: "2024-05-01"}
	code := c.Main([]string{"rox", "--version"}, mainer.Stdio{Stdout: &buf, Stderr: &buf})
	assert.Equal(t, mainer.Success, code)
	assert.Equal(t, "rox 1.2 2024-05-01\n", buf.String())

	buf.Reset()
	code = c.Main([]string{"rox", "--help"}, mainer.Stdio{Stdout: &buf, Stderr: &buf})
	assert.Equal(t, mainer.Success, code)
	assert.Contains(t, buf.String(), "usage: rox")
}
