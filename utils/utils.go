/*
Copyright © 2026 Red Hat, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package utils contains helper functions shared by other packages.
package utils

import (
	"strings"
)

// SetHTTPPrefix adds HTTP prefix if it is not already present in the given string
func SetHTTPPrefix(url string) string {
	if !strings.HasPrefix(url, "http") {
		// if no protocol is specified in given URL, assume it is not
		// needed to use https
		url = "http://" + url
	}
	return url
}

// BoolToBit converts boolean value into 0 or 1
func BoolToBit(value bool) string {
	if value {
		return "1"
	}
	return "0"
}
