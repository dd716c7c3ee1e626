package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/gharib85/cmistark/src/plot"
)

// Settings hold the rendering configuration shared by the command line
// tools: defaults, an optional starkplot.yaml and STARKPLOT_* environment
// overrides, with CLI flags layered on top by the callers. Mmax and Kamax
// carry -1 until Resolve time, meaning "follow Jmax".
type Settings struct {
	Jmin  int
	Jmax  int
	Mmin  int
	Mmax  int
	Kamax int

	// Isomer is the comma-separated isomer index list, e.g. "0,1".
	Isomer string

	// States is the explicit state token list; non-empty overrides the
	// range bounds.
	States string

	EnergyUnit string
	DipoleUnit string
	Dipole     bool

	NSSForbidden string
	Legend       bool
	Verbose      bool

	// Out is the output image path; empty means "derive from the first
	// input file". Width is the figure width in pixels.
	Out   string
	Width int
}

// Load resolves tool defaults, an optional starkplot.yaml in the working
// directory and STARKPLOT_* environment variables into Settings. Keys use
// the flag spelling ("energy-unit" reads STARKPLOT_ENERGY_UNIT).
func Load() Settings {
	v := viper.New()

	v.SetDefault("jmin", 0)
	v.SetDefault("jmax", 2)
	v.SetDefault("mmin", 0)
	v.SetDefault("mmax", -1)
	v.SetDefault("kamax", -1)
	v.SetDefault("isomer", "0")
	v.SetDefault("states", "")
	v.SetDefault("energy-unit", "MHz")
	v.SetDefault("dipole-unit", "MHz")
	v.SetDefault("dipole", false)
	v.SetDefault("nss-forbidden", "")
	v.SetDefault("legend", false)
	v.SetDefault("verbose", false)
	v.SetDefault("out", "")
	v.SetDefault("width", 1000)

	v.SetConfigName("starkplot")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // file is optional

	v.SetEnvPrefix("STARKPLOT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return Settings{
		Jmin:         v.GetInt("jmin"),
		Jmax:         v.GetInt("jmax"),
		Mmin:         v.GetInt("mmin"),
		Mmax:         v.GetInt("mmax"),
		Kamax:        v.GetInt("kamax"),
		Isomer:       v.GetString("isomer"),
		States:       v.GetString("states"),
		EnergyUnit:   v.GetString("energy-unit"),
		DipoleUnit:   v.GetString("dipole-unit"),
		Dipole:       v.GetBool("dipole"),
		NSSForbidden: v.GetString("nss-forbidden"),
		Legend:       v.GetBool("legend"),
		Verbose:      v.GetBool("verbose"),
		Out:          v.GetString("out"),
		Width:        v.GetInt("width"),
	}
}

// PlotOptions validates the settings and resolves them into pipeline
// options. An unknown energy unit or a bad isomer list fails; an unknown
// dipole unit only switches the dipole panel off with a warning, so the
// energy panel still renders.
func (s Settings) PlotOptions() (plot.Options, error) {
	eu, err := plot.ParseEnergyUnit(s.EnergyUnit)
	if err != nil {
		return plot.Options{}, err
	}
	isomers, err := ParseIsomers(s.Isomer)
	if err != nil {
		return plot.Options{}, err
	}

	mmax, kamax := s.Mmax, s.Kamax
	if mmax < 0 {
		mmax = s.Jmax
	}
	if kamax < 0 {
		kamax = s.Jmax
	}

	opt := plot.Options{
		Selection: plot.Selection{
			StateList:    s.States,
			Jmin:         s.Jmin,
			Jmax:         s.Jmax,
			Mmin:         s.Mmin,
			Mmax:         mmax,
			Kamax:        kamax,
			Isomers:      isomers,
			NSSForbidden: s.NSSForbidden,
		},
		EnergyUnit: eu,
		Legend:     s.Legend,
	}

	if s.Dipole {
		du, err := plot.ParseDipoleUnit(s.DipoleUnit)
		if err != nil {
			log.Warn().Str("unit", s.DipoleUnit).Msg("unknown dipole unit, dipole panel disabled")
		} else {
			opt.Dipole = true
			opt.DipoleUnit = du
		}
	}
	return opt, nil
}

// ParseIsomers parses the comma-separated isomer index list. An empty list
// selects isomer 0.
func ParseIsomers(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return []int{0}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("isomer list %q: bad index %q", s, p)
		}
		out = append(out, n)
	}
	return out, nil
}

// InitLogging configures the global zerolog output for the command line
// tools: console format on stderr, Info level, Debug with verbose.
func InitLogging(verbose bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}
