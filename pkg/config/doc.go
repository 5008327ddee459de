// Package config loads observer tool configuration from YAML.
//
// Example file:
//
//	slot_count: 2
//	default_slot: 0
//	log_level: debug
//	trace_file: /var/log/observer/registry.otrace
//	fail_codes:
//	  SIGNAL_INFO: IPC_CONNECT_FAIL
//
// Command-line flags override file values; see the cmd packages.
package config
