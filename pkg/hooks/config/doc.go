/*
Package config loads registry settings from YAML or JSON.

# Overview

Settings holds the knobs a host application usually wants to keep out of
code: the default priority and accepted-argument count for registrations,
whether OpenTelemetry metrics and tracing are on, the log level, and the tag
prefix used by the shortcode parser.

# File Loading

	s, err := config.FromFile("hooks.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	h := hooks.NewFromConfig(s)

A settings file looks like:

	default_priority: 10
	default_accepted_args: 1
	metrics: true
	tracing: false
	log_level: debug
	shortcode_prefix: "shortcode:"

Missing keys keep their Defaults() value. Keys with the wrong type, negative
accepted-argument counts, and unknown log levels are reported as errors
wrapping ErrInvalidSettings.
*/
package config
