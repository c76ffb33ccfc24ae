// stl2go converts STL meshes into Go source declaring fixed-point node, face and normal
// tables for the vmath pipeline.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/tiny3d/logging"
	"github.com/lixenwraith/tiny3d/mesh"
	"github.com/lixenwraith/tiny3d/vmath"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "stl2go: %v\n", err)
		os.Exit(1)
	}
}

// job is one input/output pair
type job struct {
	input, output, name string
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	opts, inputs, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{Debug: opts.Verbose})
	if err != nil {
		return err
	}
	defer logger.Sync()

	jobs, err := planJobs(opts, inputs)
	if err != nil {
		return err
	}

	command := strings.Join(append([]string{"stl2go"}, args...), " ")
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return convert(logger, opts, j, command)
		})
	}
	return g.Wait()
}

// planJobs resolves output paths and identifiers for every input
func planJobs(opts options, inputs []string) ([]job, error) {
	jobs := make([]job, 0, len(inputs))
	seen := make(map[string]string)
	for _, in := range inputs {
		j := job{input: in, name: opts.Name}
		if j.name == "" {
			j.name = mesh.Identifier(in)
		}

		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + "_mesh.go"
		switch {
		case len(inputs) == 1 && opts.Output != "":
			j.output = opts.Output
		case opts.Output != "":
			j.output = filepath.Join(opts.Output, base)
		default:
			j.output = filepath.Join(filepath.Dir(in), base)
		}

		if filepath.Clean(j.output) == filepath.Clean(in) {
			return nil, errors.Errorf("input and output are the same file: %s", in)
		}
		if prev, ok := seen[j.output]; ok {
			return nil, errors.Errorf("%s and %s both write %s", prev, in, j.output)
		}
		seen[j.output] = in
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func convert(logger *zap.Logger, opts options, j job, command string) error {
	log := logger.With(zap.String("input", j.input))

	f, err := os.Open(j.input)
	if err != nil {
		return errors.Wrap(err, "open input")
	}
	defer f.Close()

	m, err := mesh.Decode(f, mesh.Options{Scale: opts.Scale})
	if err != nil {
		return errors.Wrapf(err, "decode %s", j.input)
	}
	log.Debug("decoded", zap.Int("vertices", len(m.Nodes)), zap.Int("triangles", len(m.Faces)))

	if t := opts.Transform.matrix(); t != vmath.Identity {
		m = m.Transform(t)
		log.Debug("transformed", zap.Stringer("matrix", t))
	}
	lo, hi := m.Bounds()
	log.Debug("bounds", zap.Stringer("min", lo), zap.Stringer("max", hi))

	var src bytes.Buffer
	err = mesh.WriteGo(&src, m, mesh.GoOptions{
		Package: opts.Package,
		Name:    j.name,
		Normals: opts.Normals,
		Command: command,
	})
	if err != nil {
		return errors.Wrapf(err, "generate %s", j.output)
	}

	if err := writeOutput(j.output, src.Bytes(), opts.Overwrite); err != nil {
		return err
	}
	log.Info("converted",
		zap.String("output", j.output),
		zap.Int("vertices", len(m.Nodes)),
		zap.Int("triangles", len(m.Faces)),
	)
	return nil
}

// writeOutput refuses to replace an existing file unless overwrite is set
func writeOutput(path string, data []byte, overwrite bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create output directory")
		}
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return errors.Errorf("output %s exists, use -y to overwrite", path)
		}
		return errors.Wrap(err, "create output")
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
