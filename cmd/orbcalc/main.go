// Command orbcalc evaluates ball-arithmetic quantities from the command
// line: cached constants, zeta values, polylogarithms, and small
// expressions, at a configurable precision. Results print as
// [midpoint +/- radius].
package main

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/orb"
	"github.com/joeycumines/stumpy"
	"github.com/spf13/cobra"
)

type config struct {
	// Prec is the working precision in bits.
	Prec uint `toml:"prec"`
	// Digits is the number of decimal digits printed for midpoints;
	// 0 means shortest round-trip.
	Digits int `toml:"digits"`
}

func defaultConfig() config {
	return config{Prec: 256}
}

// loadConfig merges the optional TOML file into the defaults. An explicit
// path that does not exist is an error; the implicit ./orbcalc.toml is not.
func loadConfig(path string) (config, error) {
	c := defaultConfig()
	explicit := path != ``
	if !explicit {
		path = `orbcalc.toml`
	}
	if _, err := toml.DecodeFile(path, &c); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, fmt.Errorf(`orbcalc: load config %q: %w`, path, err)
	}
	if c.Prec == 0 || c.Prec > orb.MaxPrec {
		return c, fmt.Errorf(`orbcalc: config %q: invalid prec %d`, path, c.Prec)
	}
	return c, nil
}

type app struct {
	cfg        config
	configPath string
	verbose    bool
}

func (a *app) digits() int {
	if a.cfg.Digits <= 0 {
		return -1
	}
	return a.cfg.Digits
}

func (a *app) print(cmd *cobra.Command, b *orb.Ball) {
	fmt.Fprintln(cmd.OutOrStdout(), b.Text('g', a.digits()))
}

// parseBall parses a decimal (or rational p/q) literal into an exact or
// correctly rounded ball.
func (a *app) parseBall(s string) (*orb.Ball, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf(`orbcalc: invalid number %q`, s)
	}
	return new(orb.Ball).SetRat(r, a.cfg.Prec), nil
}

func main() {
	a := &app{}

	root := &cobra.Command{
		Use:           `orbcalc`,
		Short:         `Rigorous ball-arithmetic calculator`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(a.configPath)
			if err != nil {
				return err
			}
			if f := cmd.Flags(); f.Changed(`prec`) {
				v, _ := f.GetUint(`prec`)
				if v == 0 || v > orb.MaxPrec {
					return fmt.Errorf(`orbcalc: invalid prec %d`, v)
				}
				cfg.Prec = v
			}
			if f := cmd.Flags(); f.Changed(`digits`) {
				cfg.Digits, _ = f.GetInt(`digits`)
			}
			a.cfg = cfg
			if a.verbose {
				logger := stumpy.L.New(
					stumpy.L.WithStumpy(
						stumpy.WithWriter(cmd.ErrOrStderr()),
						stumpy.WithTimeField(``),
					),
					stumpy.L.WithLevel(logiface.LevelDebug),
				)
				orb.DefaultCache.Logger = logger.Logger()
			}
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.Uint(`prec`, defaultConfig().Prec, `working precision in bits`)
	pf.Int(`digits`, 0, `decimal digits printed (0 = shortest round-trip)`)
	pf.StringVar(&a.configPath, `config`, ``, `TOML config file (default ./orbcalc.toml if present)`)
	pf.BoolVarP(&a.verbose, `verbose`, `v`, false, `log cache activity to stderr`)

	root.AddCommand(
		&cobra.Command{
			Use:   `const <name>`,
			Short: `Print a cached mathematical constant`,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := orb.ParseConstant(args[0])
				if err != nil {
					return err
				}
				a.print(cmd, orb.DefaultCache.Get(c, a.cfg.Prec))
				return nil
			},
		},
		&cobra.Command{
			Use:   `zeta <s>`,
			Short: `Print the Riemann zeta value at s`,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if n, err := strconv.ParseUint(args[0], 10, 64); err == nil {
					a.print(cmd, orb.ZetaUint(n, a.cfg.Prec))
					return nil
				}
				s, err := a.parseBall(args[0])
				if err != nil {
					return err
				}
				a.print(cmd, new(orb.Ball).Zeta(s, a.cfg.Prec))
				return nil
			},
		},
		&cobra.Command{
			Use:   `polylog <s> <z>`,
			Short: `Print the polylogarithm of order s at z`,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := a.parseBall(args[0])
				if err != nil {
					return err
				}
				z, err := a.parseBall(args[1])
				if err != nil {
					return err
				}
				a.print(cmd, new(orb.Ball).PolyLog(s, z, a.cfg.Prec))
				return nil
			},
		},
		&cobra.Command{
			Use:   `eval <expression>`,
			Short: `Evaluate an arithmetic expression`,
			Long: `Evaluate an arithmetic expression over balls.

Supports + - * / ^, parentheses, decimal and rational literals, the named
constants (pi, e, log2, log10, euler, catalan, khinchin, glaisher, apery,
logsqrt2pi), and the functions sqrt, exp, expm1, log, log1p, sin, cos, tan,
asin, acos, atan, sinh, cosh, tanh, gamma, lgamma, digamma, zeta, abs, inv,
and the two-argument pow, atan2, polylog.`,
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				b, err := evalExpr(args[0], a.cfg.Prec)
				if err != nil {
					return err
				}
				a.print(cmd, b)
				return nil
			},
		},
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
