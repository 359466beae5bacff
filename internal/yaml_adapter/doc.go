// Package yaml_adapter loads experiment definitions from YAML files into the
// format-agnostic config.Model. A file holds a top-level `experiments` list
// whose entries mirror the HCL `experiment` block.
package yaml_adapter
