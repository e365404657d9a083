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

// Share is the uniform split of a sample budget across a round's workers.
type Share struct {
	Workers   int
	PerWorker int
	// Dropped is total % Workers. Those samples are assigned to nobody.
	Dropped int
}

// Realized is the number of samples the round actually draws.
func (s Share) Realized() int { return s.PerWorker * s.Workers }

// Partition splits total samples evenly across workers using integer
// division. The remainder is dropped rather than handed to the first
// workers, so every worker gets the same share and the round aggregate can
// weight partials equally.
func Partition(total, workers int) Share {
	if workers < 1 {
		panic("quadrature: Partition called with workers < 1")
	}
	return Share{
		Workers:   workers,
		PerWorker: total / workers,
		Dropped:   total % workers,
	}
}
