// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"errors"
	"fmt"
	"strconv"

	"integrate/pkg/quadrature"
)

// ErrUsage marks malformed positional arguments.
var ErrUsage = errors.New("usage")

const profileFlag = "profile"

// parseRequest turns <lower> <upper> <samples> <max_workers> [profile] into a
// request. It checks syntax only; domain rules are left to Request.Validate.
func parseRequest(args []string) (quadrature.Request, error) {
	if len(args) < 4 || len(args) > 5 {
		return quadrature.Request{}, fmt.Errorf("%w: expected 4 or 5 arguments, got %d", ErrUsage, len(args))
	}
	names := [4]string{"lower bound", "upper bound", "samples", "max workers"}
	var vals [4]int
	for i := range vals {
		n, err := strconv.Atoi(args[i])
		if err != nil {
			return quadrature.Request{}, fmt.Errorf("%w: %s %q is not an integer", ErrUsage, names[i], args[i])
		}
		vals[i] = n
	}
	req := quadrature.Request{
		Lower:      float64(vals[0]),
		Upper:      float64(vals[1]),
		Samples:    vals[2],
		MaxWorkers: vals[3],
	}
	if len(args) == 5 {
		if args[4] != profileFlag {
			return quadrature.Request{}, fmt.Errorf("%w: unrecognized option %q (want %q)", ErrUsage, args[4], profileFlag)
		}
		req.Profile = true
	}
	return req, nil
}
