package main

import (
	"flag"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/tiny3d/vmath"
)

// options gathers flags and the optional YAML config. Flags set on the command line
// win over the config file.
type options struct {
	Output    string          `yaml:"output"`
	Package   string          `yaml:"package"`
	Name      string          `yaml:"name"`
	Scale     float64         `yaml:"scale"`
	Normals   bool            `yaml:"normals"`
	Overwrite bool            `yaml:"overwrite"`
	Verbose   bool            `yaml:"verbose"`
	Transform transformConfig `yaml:"transform"`

	Config string `yaml:"-"`
}

// transformConfig is applied to the mesh before emission as T * Rz * Ry * Rx * S
type transformConfig struct {
	Rotate    [3]int64    `yaml:"rotate"` // degrees
	Translate [3]float64  `yaml:"translate"`
	Scale     *[3]float64 `yaml:"scale"`
}

func (t transformConfig) matrix() vmath.Matrix4 {
	m := vmath.M4Chain(
		vmath.M4Translate(vmath.V3FromFloat(t.Translate[0], t.Translate[1], t.Translate[2])),
		vmath.M4RotateZ(vmath.Degrees(t.Rotate[2])),
		vmath.M4RotateY(vmath.Degrees(t.Rotate[1])),
		vmath.M4RotateX(vmath.Degrees(t.Rotate[0])),
	)
	if t.Scale != nil {
		s := t.Scale
		m = vmath.M4Mul(m, vmath.M4Scaling(vmath.V3FromFloat(s[0], s[1], s[2])))
	}
	return m
}

func defaultOptions() options {
	return options{Package: "mesh", Scale: 1.0}
}

func parseArgs(args []string, stderr io.Writer) (options, []string, error) {
	opts := defaultOptions()
	fs := flag.NewFlagSet("stl2go", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		io.WriteString(stderr, "Usage: stl2go [flags] input.stl [more.stl ...]\n"+
			"Convert STL meshes (ASCII or binary) to Go source with fixed-point tables.\n\n")
		fs.PrintDefaults()
	}

	var flagOpts options
	fs.StringVar(&flagOpts.Output, "o", "", "output file, or directory for several inputs")
	fs.StringVar(&flagOpts.Package, "pkg", opts.Package, "package name of the generated file")
	fs.StringVar(&flagOpts.Name, "name", "", "identifier prefix (default derived from the input file name)")
	fs.Float64Var(&flagOpts.Scale, "scale", opts.Scale, "scale ratio applied to coordinates")
	fs.BoolVar(&flagOpts.Normals, "normals", false, "emit face normals")
	fs.BoolVar(&flagOpts.Overwrite, "y", false, "overwrite existing output files")
	fs.BoolVar(&flagOpts.Verbose, "v", false, "verbose output")
	fs.StringVar(&flagOpts.Config, "config", "", "YAML config with package, scale, normals and transform")
	if err := fs.Parse(args); err != nil {
		return opts, nil, err
	}

	if flagOpts.Config != "" {
		if err := loadConfig(flagOpts.Config, &opts); err != nil {
			return opts, nil, err
		}
		opts.Config = flagOpts.Config
	}

	// Explicit flags override config values
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			opts.Output = flagOpts.Output
		case "pkg":
			opts.Package = flagOpts.Package
		case "name":
			opts.Name = flagOpts.Name
		case "scale":
			opts.Scale = flagOpts.Scale
		case "normals":
			opts.Normals = flagOpts.Normals
		case "y":
			opts.Overwrite = flagOpts.Overwrite
		case "v":
			opts.Verbose = flagOpts.Verbose
		}
	})

	inputs := fs.Args()
	if len(inputs) == 0 {
		fs.Usage()
		return opts, nil, errors.New("no input files")
	}
	if opts.Scale <= 0 {
		return opts, nil, errors.Errorf("scale must be positive, got %v", opts.Scale)
	}
	if len(inputs) > 1 && opts.Name != "" {
		return opts, nil, errors.New("-name needs a single input")
	}
	return opts, inputs, nil
}

func loadConfig(path string, opts *options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, opts); err != nil {
		return errors.Wrapf(err, "parse config %s", path)
	}
	return nil
}
