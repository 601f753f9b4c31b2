/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"encoding/json"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

var printMutex sync.Mutex

// print writes v to w in the configured format
func (a *app) print(w io.Writer, v interface{}) error {
	var (
		b   []byte
		err error
	)
	switch a.settings.Output {
	case outputYAML:
		b, err = yaml.Marshal(v)
	default:
		b, err = json.MarshalIndent(v, "", "  ")
		b = append(b, '\n')
	}
	if err != nil {
		return errors.Wrap(err, "formatting output failed")
	}

	printMutex.Lock()
	defer printMutex.Unlock()
	_, err = w.Write(b)
	return err
}

// parseParams turns key=value arguments into query parameters
func parseParams(args []string) (url.Values, error) {
	values := url.Values{}
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, errors.Errorf("expecting key=value, got [%s]", arg)
		}
		values.Add(k, v)
	}
	return values, nil
}
