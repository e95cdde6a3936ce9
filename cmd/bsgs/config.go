// Copyright © 2021 Io FinNet Group, Inc.

package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	commonint "github.com/iofinnet/bsgs/common/int"
	"github.com/iofinnet/bsgs/crypto/group"
)

const (
	envPrefix = "BSGS"

	keyBackend = "backend"
	keyP       = "p"
	keyG       = "g"
	keyH       = "h"
	keyBits    = "bits"
)

// overrides holds flag values; empty strings leave the config file or environment in charge.
type overrides map[string]string

type config struct {
	v *viper.Viper
}

func loadConfig(path string, flags overrides) (*config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(keyBackend, commonint.BigName)
	v.SetDefault(keyBits, group.ReferenceXMaxExp)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config %s", path)
		}
	}
	for key, val := range flags {
		if val != "" {
			v.Set(key, val)
		}
	}
	if err := commonint.CheckName(v.GetString(keyBackend)); err != nil {
		return nil, err
	}
	return &config{v: v}, nil
}

func (c *config) backend() string {
	return c.v.GetString(keyBackend)
}

// instance returns the configured instance, or the reference instance when p, g and h are all unset.
func (c *config) instance() (*group.Instance, error) {
	p, g, h := c.v.GetString(keyP), c.v.GetString(keyG), c.v.GetString(keyH)
	bits := c.v.GetUint(keyBits)
	if p == "" && g == "" && h == "" {
		in := group.Reference()
		in.XMaxExp = bits
		return in, nil
	}
	return group.Parse(p, g, h, bits)
}
