// Package tapify turns a callable into a command-line entry point.
//
// Tapify reads the parameters of the callable, merges help text from its
// documentation, derives an argument schema, parses the command line against
// it and calls the callable with the result:
//
//	func greet(name string, count int) string { ... }
//
//	out, err := tapify.Tapify(ctx,
//		callable.Func("greet", greet,
//			callable.Names("name", "count"),
//			callable.Default("count", 3)),
//		tapify.WithArgs([]string{"--name", "abc"}))
//
// Values for a parameter come, in order of precedence, from the command line,
// from override values given with WithOverrides, and from the callable's own
// defaults. Parameters without any of those are required.
package tapify

import (
	"context"
	"maps"

	"github.com/sirupsen/logrus"

	"github.com/NF-coder/tap-modified/lib/argparse"
	"github.com/NF-coder/tap-modified/lib/callable"
	"github.com/NF-coder/tap-modified/lib/docparse"
	"github.com/NF-coder/tap-modified/lib/schema"
)

// Tapify parses the command line against the parameters of c and calls it.
// It returns whatever c returns; errors from c are returned unchanged.
func Tapify(ctx context.Context, c callable.Callable, opts ...Option) (any, error) {
	cfg := newConfig(opts)
	log := cfg.logger.WithField("callable", c.Name())

	s, doc, err := describe(c, cfg, log)
	if err != nil {
		return nil, err
	}

	p := argparse.Parser{
		Program:      cfg.programName(c),
		Description:  doc.Description(),
		ExplicitBool: cfg.explicitBool,
		KnownOnly:    cfg.knownOnly,
		Output:       cfg.output,
	}

	args := cfg.arguments()
	log.WithField("tokens", len(args)).Debug("Parsing command line")

	res, err := p.Parse(s, args)
	if err != nil {
		return nil, err
	}

	kwargs := maps.Clone(res.Values)
	if kwargs == nil {
		kwargs = make(map[string]any)
	}

	switch {
	case s.VarKeyword != "":
		extra, err := mergeExtra(res.Extra)
		if err != nil {
			return nil, err
		}

		log.WithFields(logrus.Fields{
			"param":     s.VarKeyword,
			"arguments": len(extra),
		}).Debug("Folding unknown arguments into keyword parameter")

		kwargs[s.VarKeyword] = extra

	case len(res.Extra) > 0:
		log.WithField("tokens", res.Extra).Debug("Ignoring unknown arguments")
	}

	log.Debug("Calling")

	return c.Call(ctx, kwargs)
}

// Describe derives the argument schema and documentation of c without parsing
// anything. Only the override, known-only and "any" policy options apply.
func Describe(c callable.Callable, opts ...Option) (*schema.Schema, docparse.Docstring, error) {
	cfg := newConfig(opts)

	return describe(c, cfg, cfg.logger.WithField("callable", c.Name()))
}

func describe(c callable.Callable, cfg *config, log logrus.FieldLogger) (*schema.Schema, docparse.Docstring, error) {
	params, err := c.Params()
	if err != nil {
		return nil, docparse.Docstring{}, err
	}

	doc := docparse.Parse(c.Doc())

	s, err := schema.Build(params, mergeDoc(params, doc), cfg.overrides, schema.Options{
		KnownOnly: cfg.knownOnly,
		AnyPolicy: cfg.anyPolicy,
	})
	if err != nil {
		return nil, docparse.Docstring{}, err
	}

	for _, spec := range s.Specs {
		log.WithFields(logrus.Fields{
			"param":  spec.Name,
			"type":   spec.Type.String(),
			"source": spec.Source.String(),
		}).Debug("Derived argument")
	}

	if len(s.Dropped) > 0 {
		log.WithField("overrides", s.Dropped).Debug("Dropping unknown override values")
	}

	return s, doc, nil
}

// mergeDoc returns the help text of every documented parameter of params.
// Documented names that are not parameters are left out.
func mergeDoc(params []callable.Param, doc docparse.Docstring) map[string]string {
	all := doc.ParamHelp()
	help := make(map[string]string, len(params))

	for _, p := range params {
		if text, ok := all[p.Name]; ok {
			help[p.Name] = text
		}
	}

	return help
}

func (c *config) programName(fn callable.Callable) string {
	if c.program != "" {
		return c.program
	}

	return fn.Name()
}
