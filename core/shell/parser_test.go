package shell

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

// dump renders every field of the parsed pipelines for golden comparison.
func dump(cmds []*Command) []byte {
	var buf bytes.Buffer
	for i, head := range cmds {
		fmt.Fprintf(&buf, "pipeline %d: %s\n", i, head)
		for j, stage := range head.Stages() {
			fmt.Fprintf(&buf, "  stage %d: name=%q args=%q op=%s in=%q out=%q append=%t background=%t\n",
				j,
				stage.Name,
				stage.Args,
				stage.Operator,
				stage.InputRedirection,
				stage.OutputRedirection,
				stage.AppendOutput,
				stage.Background)
		}
	}
	return buf.Bytes()
}

func TestParse_golden(t *testing.T) {
	cases := map[string]string{
		"pipeline":          "cat < in.txt | grep -v x | sort > out.txt &",
		"multiple":          "sleep 1 & echo hi",
		"missing-target":    "sort <",
		"redirect-override": "echo a > one >> two",
	}

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden", "parser")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
	)

	for tn, line := range cases {
		t.Run(tn, func(t *testing.T) {
			g.Assert(t, tn, dump(ParseLine(line)))
		})
	}
}

func TestParse_empty(t *testing.T) {
	assert.Empty(t, Parse(nil))
	assert.Empty(t, ParseLine(""))
	assert.Empty(t, ParseLine("   \t "))
}

func TestParse_plainArgs(t *testing.T) {
	for _, line := range []string{
		"ls",
		"ls -l -a /tmp",
		"grep -r TODO src/ docs/",
		`echo "quoted" 'single'`,
	} {
		t.Run(line, func(t *testing.T) {
			fields := strings.Fields(line)
			cmds := ParseLine(line)

			assert.Len(t, cmds, 1)
			cmd := cmds[0]
			assert.Equal(t, fields[0], cmd.Name)
			if len(fields) > 1 {
				assert.Equal(t, fields[1:], cmd.Args)
			} else {
				assert.Empty(t, cmd.Args)
			}
			assert.Equal(t, OpNone, cmd.Operator)
			assert.Nil(t, cmd.Next)
		})
	}
}

func TestParse_threeStageChain(t *testing.T) {
	for line, lastOp := range map[string]Operator{
		"A | B | C":   OpNone,
		"A | B | C &": OpBackground,
		"A|B|C x y":   OpNone,
	} {
		t.Run(line, func(t *testing.T) {
			cmds := ParseLine(line)
			assert.Len(t, cmds, 1)

			stages := cmds[0].Stages()
			assert.Len(t, stages, 3)
			assert.Equal(t, []string{"A", "B", "C"}, []string{stages[0].Name, stages[1].Name, stages[2].Name})
			assert.Equal(t, OpPipe, stages[0].Operator)
			assert.Equal(t, OpPipe, stages[1].Operator)
			assert.Equal(t, lastOp, stages[2].Operator)
			assert.Same(t, stages[1], stages[0].Next)
			assert.Same(t, stages[2], stages[1].Next)
			assert.Nil(t, stages[2].Next)
		})
	}
}

func TestParse_backgroundOnlyOnLastStage(t *testing.T) {
	cmds := ParseLine("a | b | c &")
	stages := cmds[0].Stages()

	assert.False(t, stages[0].Background)
	assert.False(t, stages[1].Background)
	assert.True(t, stages[2].Background)
	assert.True(t, cmds[0].IsBackground())
}

func TestParse_redirectionsAreStageLocal(t *testing.T) {
	stages := ParseLine("cat < in | tr a b > out")[0].Stages()

	assert.Equal(t, "in", stages[0].InputRedirection)
	assert.Empty(t, stages[0].OutputRedirection)
	assert.Empty(t, stages[1].InputRedirection)
	assert.Equal(t, "out", stages[1].OutputRedirection)
	assert.False(t, stages[1].AppendOutput)
}

func TestParse_trailingPipe(t *testing.T) {
	stages := ParseLine("ls |")[0].Stages()

	assert.Len(t, stages, 2)
	assert.True(t, stages[1].IsEmpty())
}

func TestParse_orIsAnArgument(t *testing.T) {
	cmd := ParseLine("a || b")[0]

	assert.Equal(t, "a", cmd.Name)
	assert.Equal(t, []string{"||", "b"}, cmd.Args)
}

func ExampleParseLine() {
	for _, head := range ParseLine("sleep 5 & ls -l | wc -l > count") {
		fmt.Printf("%q background=%t stages=%d\n", head.String(), head.IsBackground(), len(head.Stages()))
	}

	// Output: "sleep 5 &" background=true stages=1
	// "ls -l | wc -l > count" background=false stages=2
}
