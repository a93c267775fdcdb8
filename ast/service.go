// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ast

// MethodConfig holds the inputs to NewMethod.
type MethodConfig struct {
	Name          string
	Documentation string
	RequestType   string
	ResponseType  string
	Options       []*Option
}

// Method is an rpc declared in a service.
type Method struct {
	name         string
	doc          string
	requestType  string
	responseType string
	options      []*Option
}

func NewMethod(cfg MethodConfig) *Method {
	return &Method{
		name:         cfg.Name,
		doc:          cfg.Documentation,
		requestType:  cfg.RequestType,
		responseType: cfg.ResponseType,
		options:      cloneSlice(cfg.Options),
	}
}

func (m *Method) Name() string {
	return m.name
}

func (m *Method) Documentation() string {
	return m.doc
}

// RequestType returns the request message name as written.
func (m *Method) RequestType() string {
	return m.requestType
}

// ResponseType returns the response message name as written.
func (m *Method) ResponseType() string {
	return m.responseType
}

func (m *Method) Options() []*Option {
	return cloneSlice(m.options)
}

// Equal reports whether m and other are structurally equal.
func (m *Method) Equal(other *Method) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.name == other.name &&
		m.doc == other.doc &&
		m.requestType == other.requestType &&
		m.responseType == other.responseType &&
		equalSlices(m.options, other.options)
}

// ServiceConfig holds the inputs to NewService.
type ServiceConfig struct {
	Name               string
	FullyQualifiedName string
	Documentation      string
	Options            []*Option
	Methods            []*Method
}

// Service is a service declaration.
type Service struct {
	name    string
	fqname  string
	doc     string
	options []*Option
	methods []*Method
}

func NewService(cfg ServiceConfig) *Service {
	return &Service{
		name:    cfg.Name,
		fqname:  cfg.FullyQualifiedName,
		doc:     cfg.Documentation,
		options: cloneSlice(cfg.Options),
		methods: cloneSlice(cfg.Methods),
	}
}

func (s *Service) Name() string {
	return s.name
}

func (s *Service) FullyQualifiedName() string {
	return s.fqname
}

func (s *Service) Documentation() string {
	return s.doc
}

func (s *Service) Options() []*Option {
	return cloneSlice(s.options)
}

func (s *Service) Methods() []*Method {
	return cloneSlice(s.methods)
}

// Equal reports whether s and other are structurally equal.
func (s *Service) Equal(other *Service) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.name == other.name &&
		s.fqname == other.fqname &&
		s.doc == other.doc &&
		equalSlices(s.options, other.options) &&
		equalSlices(s.methods, other.methods)
}
