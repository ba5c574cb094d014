// seehuhn.de/go/curveplot - overlaid time-series curve rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package plot

import (
	"errors"
	"fmt"

	"seehuhn.de/go/curveplot/merge"
)

// ConfigError reports a configuration value which cannot be used.
type ConfigError struct {
	Field string
	Value string

	// Err optionally gives the underlying cause.
	Err error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("invalid %s %q", e.Field, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err must abort the program.  This is the case
// for configuration errors, missing data of an error plot and
// inconsistent time stamps.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var ce *ConfigError
	var ie *merge.InconsistencyError
	return errors.As(err, &ce) || errors.As(err, &ie) || errors.Is(err, merge.ErrMissingData)
}
