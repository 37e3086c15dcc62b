// wftool works with YAML workflow specification documents: it can
// validate them, convert them to JSON, and render them as Graphviz,
// Mermaid, or HTML.
//
// Usage:
//
//	wftool validate [SPECFILE]
//	wftool dot [SPECFILE]
//	wftool mermaid [SPECFILE]
//	wftool html [SPECFILE]
//	wftool yamltojson [-p]
//
// With no SPECFILE, the spec is read from stdin.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/statepath/workflow/core"
	"github.com/statepath/workflow/tools"

	"github.com/jsccast/yaml"
)

func main() {

	if len(os.Args) < 2 {
		Usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		spec := readSpec(os.Args[2:])
		a, err := tools.Analyze(spec)
		if err != nil {
			panic(err)
		}
		js, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			panic(err)
		}
		fmt.Printf("%s\n", js)
		if !a.OK() {
			os.Exit(1)
		}

	case "dot":
		spec := readSpec(os.Args[2:])
		if err := tools.Dot(spec, os.Stdout, "", ""); err != nil {
			panic(err)
		}

	case "mermaid":
		spec := readSpec(os.Args[2:])
		if err := tools.Mermaid(spec, os.Stdout, nil, "", ""); err != nil {
			panic(err)
		}

	case "html":
		spec := readSpec(os.Args[2:])
		if err := tools.RenderSpecHTML(spec, os.Stdout); err != nil {
			panic(err)
		}

	case "yamltojson":
		pretty := false
		if 2 < len(os.Args) {
			switch os.Args[2] {
			case "-p":
				pretty = true
			default:
				panic(fmt.Sprintf("unsupported args: %v", os.Args[1:]))
			}
		}

		bs, err := io.ReadAll(os.Stdin)
		if err != nil {
			panic(err)
		}
		var x interface{}
		if err = yaml.Unmarshal(bs, &x); err != nil {
			panic(err)
		}
		var js []byte
		if pretty {
			js, err = json.MarshalIndent(&x, "", "  ")
		} else {
			js, err = json.Marshal(&x)
		}
		if err != nil {
			panic(err)
		}
		fmt.Printf("%s\n", js)

	default:
		Usage()
		os.Exit(1)
	}
}

func readSpec(args []string) *core.Spec {
	var (
		spec *core.Spec
		err  error
	)
	if 0 < len(args) {
		spec, err = core.ReadSpecFile(args[0])
	} else {
		var bs []byte
		if bs, err = io.ReadAll(os.Stdin); err == nil {
			spec, err = core.ParseSpec(bs)
		}
	}
	if err != nil {
		panic(err)
	}
	return spec
}

func Usage() {
	fmt.Println(`wftool validate|dot|mermaid|html [SPECFILE]
wftool yamltojson [-p]

With no SPECFILE, reads the spec from stdin.`)
}
