/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

// Optional holds a value that may be absent. It replaces nil pointers as the
// "not found" signal so callers have to check presence before use.
type Optional[T any] struct {
	value *T
}

// Of wraps v; a nil v yields an empty Optional.
func Of[T any](v *T) Optional[T] {
	return Optional[T]{value: v}
}

// Empty returns an Optional with no value.
func Empty[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (*T, bool) {
	return o.value, o.value != nil
}

func (o Optional[T]) IsPresent() bool {
	return o.value != nil
}

// OrElse returns the value if present, otherwise def.
func (o Optional[T]) OrElse(def *T) *T {
	if o.value != nil {
		return o.value
	}
	return def
}
