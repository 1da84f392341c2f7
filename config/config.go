// ec2search/config
// MIT License Copyright(c) 2026 Hiroshi Shimamoto
// vim:set sw=4 sts=4:

// Package config gathers the settings of a search run from flags,
// EC2SEARCH_* environment variables and an optional TOML file.
package config

import (
    "errors"
    "fmt"
    "strings"

    "github.com/BurntSushi/toml"
    "github.com/spf13/pflag"
    "github.com/spf13/viper"
)

// Example config.toml
//
// Profile = "readonly"
// LogLevel = "debug"
// LogFormat = "json"
// States = ["running", "stopped"]
// SSM = true

// File holds the defaults read from a TOML file.
type File struct {
    Profile   string
    LogLevel  string
    LogFormat string
    States    []string
    SSM       bool
}

// Load decodes a TOML config file.
func Load(path string) (*File, error) {
    cfg := &File{}
    md, err := toml.DecodeFile(path, cfg)
    if err != nil {
	return nil, fmt.Errorf("config %s: %w", path, err)
    }
    if undecoded := md.Undecoded(); len(undecoded) > 0 {
	return nil, fmt.Errorf("config %s: unknown keys %v", path, undecoded)
    }
    return cfg, nil
}

const (
    FlagConfig     = "config"
    FlagInputFile  = "inputfile"
    FlagOutputFile = "outputfile"
    FlagRegion     = "region"
    FlagProfile    = "profile"
    FlagLogLevel   = "log-level"
    FlagLogFormat  = "log-format"
    FlagState      = "state"
    FlagSSM        = "ssm"
    FlagView       = "view"
)

// Required flags, checked before anything runs.
var Required = []string{FlagInputFile, FlagOutputFile, FlagRegion}

var ErrMissingFlag = errors.New("required flag not set")

// RegisterFlags adds every setting to fs.
func RegisterFlags(fs *pflag.FlagSet) {
    fs.StringP(FlagInputFile, "i", "", "Input file containing a list of public or private ipv4s or instance ids with one entry per line")
    fs.StringP(FlagOutputFile, "o", "", "Output csv file, or s3://bucket/key")
    fs.StringP(FlagRegion, "r", "", "The AWS Region to search the instances")
    fs.StringP(FlagProfile, "p", "", "The credential profile to use if not using default credentials")
    fs.String(FlagConfig, "", "TOML file with default settings")
    fs.String(FlagLogLevel, "info", "log level (debug, info, warn, error)")
    fs.String(FlagLogFormat, "text", "log format (text, json)")
    fs.StringSlice(FlagState, nil, "only instances in these states (pending, running, stopped, ...)")
    fs.Bool(FlagSSM, false, "add SSM agent columns to the report")
    fs.Bool(FlagView, false, "show the report in the terminal after writing it")
}

// Settings of one run.
type Settings struct {
    InputFile  string
    OutputFile string
    Region     string
    Profile    string
    LogLevel   string
    LogFormat  string
    States     []string
    SSM        bool
    View       bool
}

// FromFlags resolves settings: flag, then environment, then config file,
// then the flag default.
func FromFlags(fs *pflag.FlagSet) (Settings, error) {
    v := viper.New()
    v.SetEnvPrefix("EC2SEARCH")
    v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
    v.AutomaticEnv()
    if err := v.BindPFlags(fs); err != nil {
	return Settings{}, err
    }
    if path := v.GetString(FlagConfig); path != "" {
	file, err := Load(path)
	if err != nil {
	    return Settings{}, err
	}
	setFileDefaults(v, file)
    }
    s := Settings{
	InputFile:  v.GetString(FlagInputFile),
	OutputFile: v.GetString(FlagOutputFile),
	Region:     v.GetString(FlagRegion),
	Profile:    v.GetString(FlagProfile),
	LogLevel:   v.GetString(FlagLogLevel),
	LogFormat:  v.GetString(FlagLogFormat),
	States:     splitStates(v.GetStringSlice(FlagState)),
	SSM:        v.GetBool(FlagSSM),
	View:       v.GetBool(FlagView),
    }
    if err := s.Validate(); err != nil {
	return Settings{}, err
    }
    return s, nil
}

// an env value arrives as one element, "running,stopped"
func splitStates(in []string) []string {
    out := []string{}
    for _, s := range in {
	for _, st := range strings.Split(s, ",") {
	    if st = strings.TrimSpace(st); st != "" {
		out = append(out, st)
	    }
	}
    }
    return out
}

func setFileDefaults(v *viper.Viper, file *File) {
    if file.Profile != "" {
	v.SetDefault(FlagProfile, file.Profile)
    }
    if file.LogLevel != "" {
	v.SetDefault(FlagLogLevel, file.LogLevel)
    }
    if file.LogFormat != "" {
	v.SetDefault(FlagLogFormat, file.LogFormat)
    }
    if len(file.States) > 0 {
	v.SetDefault(FlagState, file.States)
    }
    if file.SSM {
	v.SetDefault(FlagSSM, true)
    }
}

// Validate checks that the required settings are present.
func (s Settings) Validate() error {
    missing := []string{}
    if s.InputFile == "" {
	missing = append(missing, FlagInputFile)
    }
    if s.OutputFile == "" {
	missing = append(missing, FlagOutputFile)
    }
    if s.Region == "" {
	missing = append(missing, FlagRegion)
    }
    if len(missing) > 0 {
	return fmt.Errorf("%w: %s", ErrMissingFlag, strings.Join(missing, ", "))
    }
    return nil
}
