// Copyright (c) 2021 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package http

import "go.uber.org/herald/heralderrors"

// _statusCodeToCodes maps HTTP status codes returned by the queueing
// service to a slice of their corresponding error codes.
var _statusCodeToCodes = map[int][]heralderrors.Code{
	400: {heralderrors.CodeInvalidArgument},
	401: {heralderrors.CodeUnauthenticated},
	403: {heralderrors.CodePermissionDenied},
	404: {heralderrors.CodeNotFound},
	409: {heralderrors.CodeAlreadyExists},
	429: {heralderrors.CodeResourceExhausted},
	499: {heralderrors.CodeCancelled},
	500: {
		heralderrors.CodeUnknown,
		heralderrors.CodeInternal,
	},
	503: {heralderrors.CodeUnavailable},
	504: {heralderrors.CodeDeadlineExceeded},
}

// statusCodeToBestCode does a best-effort conversion from the given HTTP
// status code to an error code.
//
// If one code maps to the given HTTP status code, that code is returned.
// If more than one code maps to the given HTTP status code, one code is
// returned. If the status is >= 400 and < 500, CodeInvalidArgument is
// returned. Else, CodeUnknown is returned.
func statusCodeToBestCode(statusCode int) heralderrors.Code {
	codes, ok := _statusCodeToCodes[statusCode]
	if !ok || len(codes) == 0 {
		if statusCode >= 400 && statusCode < 500 {
			return heralderrors.CodeInvalidArgument
		}
		return heralderrors.CodeUnknown
	}
	return codes[0]
}
