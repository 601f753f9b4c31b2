/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/zhang829-666/BookchainHF/pkg/common/providers/core"
	"github.com/zhang829-666/BookchainHF/pkg/util/pathvar"
)

// Default values applied to every backend before files and environment.
const (
	DefaultServerURL      = "http://localhost:8080"
	DefaultEventURL       = "ws://localhost:8080/chaincode-events"
	DefaultEventOrigin    = "http://localhost/"
	DefaultOrganization   = "org1"
	DefaultRequestTimeout = 30 * time.Second
)

// defConfigBackend represents the default config backend
type defConfigBackend struct {
	configViper *viper.Viper
	opts        options
}

// Lookup gets the config item value by Key
func (c *defConfigBackend) Lookup(key string, opts ...core.LookupOption) (interface{}, bool) {
	if len(opts) > 0 {
		lookupOpts := &core.LookupOpts{}
		for _, option := range opts {
			option(lookupOpts)
		}

		if lookupOpts.UnmarshalType != nil {
			err := c.configViper.UnmarshalKey(key, lookupOpts.UnmarshalType)
			if err != nil {
				return nil, false
			}
			return lookupOpts.UnmarshalType, true
		}
	}
	value := c.configViper.Get(key)
	if value == nil {
		return nil, false
	}
	return value, true
}

// load template config, if any
func (c *defConfigBackend) loadTemplateConfig() error {
	templatePath := c.opts.templatePath
	if templatePath == "" {
		return nil
	}

	c.configViper.AddConfigPath(pathvar.Subst(templatePath))
	err := c.configViper.ReadInConfig()
	if err != nil {
		return errors.Wrap(err, "loading config file failed")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.url", DefaultServerURL)
	v.SetDefault("events.url", DefaultEventURL)
	v.SetDefault("events.origin", DefaultEventOrigin)
	v.SetDefault("client.organization", DefaultOrganization)
	v.SetDefault("client.timeout.request", DefaultRequestTimeout.String())
	v.SetDefault("metrics.enabled", false)
}
