// Package hcl provides the concrete HCL implementation of config.Loader. It
// is responsible for parsing the scheduler host's declarative config file
// and translating it into a config.Model, using gohcl for structural
// decoding and go-cty for the typed default values (monitor namespace and
// timeout, healthcheck port) a deployment may omit. The healthcheck port
// range check is a plain integer comparison.
package hcl
