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


package quadrature

import "math"

// Integrand maps an abscissa to its sample value, already scaled by the
// interval width so that the plain mean of samples estimates the integral.
type Integrand func(x float64) float64

// Sinc returns h(x) = sin(x)/x * (upper - lower).
//
// x = 0 is a removable singularity that is not special-cased; callers keep
// it out of range by rejecting zero bounds.
func Sinc(lower, upper float64) Integrand {
	width := upper - lower
	return func(x float64) float64 {
		return math.Sin(x) / x * width
	}
}
