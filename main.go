// Command gdev30 prints the averaged vertex normals of the D20.
package main

import (
	"fmt"
	"io"
	"os"

	"fortio.org/log"
	"github.com/carmendolina/gdev30/icosa"
)

func writeNormals(w io.Writer) error {
	normals := icosa.VertexNormals(icosa.SharedDivisor)
	for _, n := range normals {
		if _, err := fmt.Fprintln(w, icosa.Format(n)); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	log.Debugf("normalizing %d vertex sums by |sum(v0)| = %.16g", icosa.NumVertices, icosa.Divisor())
	if err := writeNormals(os.Stdout); err != nil {
		log.Fatalf("writing normals: %v", err)
	}
}
