package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dikadissss/scrtdd/cluster"
	"github.com/dikadissss/scrtdd/dd"
	"github.com/dikadissss/scrtdd/xcorr"
)

// ClusterConfig is cluster.Options' YAML-serialisable shape.
type ClusterConfig struct {
	MinWeight           float64 `yaml:"minWeight"`
	MinEStoIEratio      float64 `yaml:"minEStoIEratio"`
	MinESdist           float64 `yaml:"minESdist"`
	MaxESdist           float64 `yaml:"maxESdist"`
	MinNumNeigh         int     `yaml:"minNumNeigh"`
	MaxNumNeigh         int     `yaml:"maxNumNeigh"`
	MinDTperEvt         int     `yaml:"minDTperEvt"`
	MaxDTperEvt         int     `yaml:"maxDTperEvt"`
	NumEllipsoids       int     `yaml:"numEllipsoids"`
	MaxEllipsoidSize    float64 `yaml:"maxEllipsoidSize"`
	XcorrMaxEvStaDist   float64 `yaml:"xcorrMaxEvStaDist"`
	XcorrMaxInterEvDist float64 `yaml:"xcorrMaxInterEvDist"`
}

// ToOptions builds a cluster.Options from c.
func (c ClusterConfig) ToOptions() cluster.Options {
	return cluster.Options{
		MinWeight: c.MinWeight, MinEStoIEratio: c.MinEStoIEratio,
		MinESdist: c.MinESdist, MaxESdist: c.MaxESdist,
		MinNumNeigh: c.MinNumNeigh, MaxNumNeigh: c.MaxNumNeigh,
		MinDTperEvt: c.MinDTperEvt, MaxDTperEvt: c.MaxDTperEvt,
		NumEllipsoids: c.NumEllipsoids, MaxEllipsoidSize: c.MaxEllipsoidSize,
		XcorrMaxEvStaDist: c.XcorrMaxEvStaDist, XcorrMaxInterEvDist: c.XcorrMaxInterEvDist,
	}
}

func clusterConfigFrom(o cluster.Options) ClusterConfig {
	return ClusterConfig{
		MinWeight: o.MinWeight, MinEStoIEratio: o.MinEStoIEratio,
		MinESdist: o.MinESdist, MaxESdist: o.MaxESdist,
		MinNumNeigh: o.MinNumNeigh, MaxNumNeigh: o.MaxNumNeigh,
		MinDTperEvt: o.MinDTperEvt, MaxDTperEvt: o.MaxDTperEvt,
		NumEllipsoids: o.NumEllipsoids, MaxEllipsoidSize: o.MaxEllipsoidSize,
		XcorrMaxEvStaDist: o.XcorrMaxEvStaDist, XcorrMaxInterEvDist: o.XcorrMaxInterEvDist,
	}
}

// SolverConfig is dd.SolverOptions' YAML-serialisable shape; Ctx isn't
// representable in YAML so it's reattached as context.Background() by
// ToOptions.
type SolverConfig struct {
	Type             string `yaml:"type"` // "LSMR" or "LSQR"
	L2Normalization  bool   `yaml:"l2Normalization"`
	SolverIterations int    `yaml:"solverIterations"`
	AlgoIterations   int    `yaml:"algoIterations"`

	TTConstraint       bool    `yaml:"ttConstraint"`
	TTConstraintWeight float64 `yaml:"ttConstraintWeight"`

	DampingFactorStart float64 `yaml:"dampingFactorStart"`
	DampingFactorEnd   float64 `yaml:"dampingFactorEnd"`

	DownWeightingByResidualStart float64 `yaml:"downWeightingByResidualStart"`
	DownWeightingByResidualEnd   float64 `yaml:"downWeightingByResidualEnd"`

	UsePickUncertainty bool    `yaml:"usePickUncertainty"`
	AbsTTDiffObsWeight float64 `yaml:"absTTDiffObsWeight"`
	XcorrObsWeight     float64 `yaml:"xcorrObsWeight"`

	ATol   float64 `yaml:"aTol"`
	BTol   float64 `yaml:"bTol"`
	ConLim float64 `yaml:"conLim"`

	Verbose bool `yaml:"verbose"`

	Theoretical TheoreticalConfig `yaml:"theoretical"`
}

// TheoreticalConfig is cluster.TheoreticalOptions' YAML-serialisable
// shape (spec.md §4.7 artificial-phase synthesis).
type TheoreticalConfig struct {
	Enabled           bool `yaml:"enabled"`
	MinPeers          int  `yaml:"minPeers"`
	MaxPeersForWeight int  `yaml:"maxPeersForWeight"`
}

func (c TheoreticalConfig) toOptions() cluster.TheoreticalOptions {
	return cluster.TheoreticalOptions{
		Enabled: c.Enabled, MinPeers: c.MinPeers, MaxPeersForWeight: c.MaxPeersForWeight,
	}
}

func theoreticalConfigFrom(o cluster.TheoreticalOptions) TheoreticalConfig {
	return TheoreticalConfig{Enabled: o.Enabled, MinPeers: o.MinPeers, MaxPeersForWeight: o.MaxPeersForWeight}
}

// ToOptions builds a dd.SolverOptions from c.
func (c SolverConfig) ToOptions() dd.SolverOptions {
	t := dd.LSMR
	if c.Type == "LSQR" {
		t = dd.LSQR
	}
	return dd.SolverOptions{
		Ctx: context.Background(), Verbose: c.Verbose,
		Type: t, L2Normalization: c.L2Normalization,
		SolverIterations: c.SolverIterations, AlgoIterations: c.AlgoIterations,
		TTConstraint: c.TTConstraint, TTConstraintWeight: c.TTConstraintWeight,
		DampingFactorStart: c.DampingFactorStart, DampingFactorEnd: c.DampingFactorEnd,
		DownWeightingByResidualStart: c.DownWeightingByResidualStart,
		DownWeightingByResidualEnd:   c.DownWeightingByResidualEnd,
		UsePickUncertainty:           c.UsePickUncertainty,
		AbsTTDiffObsWeight:           c.AbsTTDiffObsWeight, XcorrObsWeight: c.XcorrObsWeight,
		ATol: c.ATol, BTol: c.BTol, ConLim: c.ConLim,
		Theoretical: c.Theoretical.toOptions(),
	}
}

func solverConfigFrom(o dd.SolverOptions) SolverConfig {
	return SolverConfig{
		Type: o.Type.String(), L2Normalization: o.L2Normalization,
		SolverIterations: o.SolverIterations, AlgoIterations: o.AlgoIterations,
		TTConstraint: o.TTConstraint, TTConstraintWeight: o.TTConstraintWeight,
		DampingFactorStart: o.DampingFactorStart, DampingFactorEnd: o.DampingFactorEnd,
		DownWeightingByResidualStart: o.DownWeightingByResidualStart,
		DownWeightingByResidualEnd:   o.DownWeightingByResidualEnd,
		UsePickUncertainty:           o.UsePickUncertainty,
		AbsTTDiffObsWeight:           o.AbsTTDiffObsWeight, XcorrObsWeight: o.XcorrObsWeight,
		ATol: o.ATol, BTol: o.BTol, ConLim: o.ConLim, Verbose: o.Verbose,
		Theoretical: theoreticalConfigFrom(o.Theoretical),
	}
}

// PhaseXcorrConfig is xcorr.PhaseConfig's YAML-serialisable shape;
// durations are expressed in seconds.
type PhaseXcorrConfig struct {
	MinCoef     float64  `yaml:"minCoef"`
	StartOffset float64  `yaml:"startOffset"`
	EndOffset   float64  `yaml:"endOffset"`
	MaxDelay    float64  `yaml:"maxDelay"`
	Components  []string `yaml:"components"`
}

func (c PhaseXcorrConfig) toPhaseConfig() xcorr.PhaseConfig {
	return xcorr.PhaseConfig{
		MinCoef:     c.MinCoef,
		StartOffset: secondsToDuration(c.StartOffset),
		EndOffset:   secondsToDuration(c.EndOffset),
		MaxDelay:    secondsToDuration(c.MaxDelay),
		Components:  c.Components,
	}
}

func phaseXcorrConfigFrom(p xcorr.PhaseConfig) PhaseXcorrConfig {
	return PhaseXcorrConfig{
		MinCoef: p.MinCoef, StartOffset: p.StartOffset.Seconds(),
		EndOffset: p.EndOffset.Seconds(), MaxDelay: p.MaxDelay.Seconds(),
		Components: p.Components,
	}
}

// SNRConfig is xcorr.SNRConfig's YAML-serialisable shape.
type SNRConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MinSNR       float64 `yaml:"minSNR"`
	NoiseWindow  float64 `yaml:"noiseWindow"`
	SignalWindow float64 `yaml:"signalWindow"`
}

func (c SNRConfig) toSNRConfig() xcorr.SNRConfig {
	return xcorr.SNRConfig{
		Enabled: c.Enabled, MinSNR: c.MinSNR,
		NoiseWindow: secondsToDuration(c.NoiseWindow), SignalWindow: secondsToDuration(c.SignalWindow),
	}
}

func snrConfigFrom(s xcorr.SNRConfig) SNRConfig {
	return SNRConfig{
		Enabled: s.Enabled, MinSNR: s.MinSNR,
		NoiseWindow: s.NoiseWindow.Seconds(), SignalWindow: s.SignalWindow.Seconds(),
	}
}

// XCorrConfig is xcorr.Options' YAML-serialisable shape.
type XCorrConfig struct {
	P   PhaseXcorrConfig `yaml:"p"`
	S   PhaseXcorrConfig `yaml:"s"`
	SNR SNRConfig        `yaml:"snr"`

	XcorrMaxEvStaDist   float64 `yaml:"xcorrMaxEvStaDist"`
	XcorrMaxInterEvDist float64 `yaml:"xcorrMaxInterEvDist"`

	MemCacheSize       int   `yaml:"memCacheSize"`
	MemCacheByteBudget int64 `yaml:"memCacheByteBudget"`

	Verbose bool `yaml:"verbose"`
}

// ToOptions builds an xcorr.Options from c.
func (c XCorrConfig) ToOptions() xcorr.Options {
	return xcorr.Options{
		Ctx: context.Background(), Verbose: c.Verbose,
		P: c.P.toPhaseConfig(), S: c.S.toPhaseConfig(),
		SNR:                 c.SNR.toSNRConfig(),
		XcorrMaxEvStaDist:   c.XcorrMaxEvStaDist,
		XcorrMaxInterEvDist: c.XcorrMaxInterEvDist,
		MemCacheSize:        c.MemCacheSize,
		MemCacheByteBudget:  c.MemCacheByteBudget,
	}
}

func xcorrConfigFrom(o xcorr.Options) XCorrConfig {
	return XCorrConfig{
		P: phaseXcorrConfigFrom(o.P), S: phaseXcorrConfigFrom(o.S),
		SNR:                 snrConfigFrom(o.SNR),
		XcorrMaxEvStaDist:   o.XcorrMaxEvStaDist,
		XcorrMaxInterEvDist: o.XcorrMaxInterEvDist,
		MemCacheSize:        o.MemCacheSize,
		MemCacheByteBudget:  o.MemCacheByteBudget,
		Verbose:             o.Verbose,
	}
}

// RunConfig bundles the three option groups a relocation run needs:
// clustering, the DD solver, and cross-correlation, loaded from a YAML
// file with environment overrides layered on top.
type RunConfig struct {
	Cluster ClusterConfig `yaml:"cluster"`
	Solver  SolverConfig  `yaml:"solver"`
	XCorr   XCorrConfig   `yaml:"xcorr"`
}

// Default returns a RunConfig seeded from every package's own
// DefaultOptions(), so an empty or partial YAML file still produces a
// fully-populated, spec-documented configuration.
func Default() RunConfig {
	return RunConfig{
		Cluster: clusterConfigFrom(cluster.DefaultOptions()),
		Solver:  solverConfigFrom(dd.DefaultOptions()),
		XCorr:   xcorrConfigFrom(xcorr.DefaultOptions()),
	}
}

func secondsToDuration(s float64) time.Duration { return time.Duration(s * float64(time.Second)) }

// Load reads a YAML run configuration from path over Default()'s
// baseline, then applies environment overrides (Load, not the
// individual-file env loading LoadEnv exposes, is cmd/scrtdd's normal
// entry point).
func Load(path string) (RunConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	ApplyEnvOverrides(&cfg)
	return cfg, nil
}

// LoadEnv loads .env then .env.local into the process environment,
// mirroring FabianUB-minibarcelona3d/apps/api/main.go's
// godotenv.Load/Overload layering (missing files are not an error).
func LoadEnv() {
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")
}

// envOverrides names the environment variables cmd/scrtdd recognises,
// each overriding one RunConfig field when set, restricted to the
// handful of knobs operators tune most often between runs without
// editing the YAML file.
var envOverrides = []struct {
	key   string
	apply func(cfg *RunConfig, value string)
}{
	{"SCRTDD_SOLVER_TYPE", func(cfg *RunConfig, v string) { cfg.Solver.Type = v }},
	{"SCRTDD_SOLVER_ALGOITERATIONS", func(cfg *RunConfig, v string) {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Solver.AlgoIterations = n
		}
	}},
	{"SCRTDD_SOLVER_VERBOSE", func(cfg *RunConfig, v string) {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Solver.Verbose = b
		}
	}},
	{"SCRTDD_XCORR_VERBOSE", func(cfg *RunConfig, v string) {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.XCorr.Verbose = b
		}
	}},
	{"SCRTDD_CLUSTER_MAXNUMNEIGH", func(cfg *RunConfig, v string) {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cluster.MaxNumNeigh = n
		}
	}},
}

// ApplyEnvOverrides mutates cfg in place for every recognised
// environment variable currently set.
func ApplyEnvOverrides(cfg *RunConfig) {
	for _, o := range envOverrides {
		if v, ok := os.LookupEnv(o.key); ok {
			o.apply(cfg, v)
		}
	}
}
