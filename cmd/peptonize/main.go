// Command peptonize demonstrates a single belief-propagation run against
// a small embedded GraphML document, printing the resulting posterior
// CSV to stdout. It takes no flags: this is a runnable demo of the
// engine package, not a configuration surface.
package main

import (
	"fmt"
	"os"

	"github.com/compomics/peptonizer-go/config"
	"github.com/compomics/peptonizer-go/engine"
)

const demoGraphML = `<?xml version="1.0"?>
<graphml>
  <graph>
    <node id="T1"><data key="d2">taxon</data></node>
    <node id="T2"><data key="d2">taxon</data></node>
    <node id="T3"><data key="d2">taxon</data></node>
    <node id="P1">
      <data key="d0">0.001</data>
      <data key="d1">0.999</data>
      <data key="d2">peptide</data>
    </node>
    <node id="F1">
      <data key="d2">factor</data>
      <data key="d3">3</data>
    </node>
    <edge source="F1" target="T1"/>
    <edge source="F1" target="T2"/>
    <edge source="F1" target="T3"/>
    <edge source="F1" target="P1"/>
  </graph>
</graphml>`

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "peptonize: loading config:", err)
		os.Exit(1)
	}

	params := engine.Params{
		Alpha:       0.9,
		Beta:        0.01,
		Regularized: cfg.Regularized,
		Prior:       0.3,
		MaxIter:     cfg.MaxIter,
		Tol:         cfg.Tol,
	}

	out, err := engine.RunBeliefPropagation([]byte(demoGraphML), params)
	if err != nil {
		fmt.Fprintln(os.Stderr, "peptonize: belief propagation:", err)
		os.Exit(1)
	}

	fmt.Print(out)
}
