package hcl

// fileSchema is the gohcl decode target for the scheduler host's config
// file. Block and attribute names are the ones a deployment writes in the
// .hcl file; translate converts this into config.Model.
type fileSchema struct {
	Priorities  []int              `hcl:"priorities,optional"`
	Monitor     *monitorSchema     `hcl:"monitor,block"`
	Healthcheck *healthcheckSchema `hcl:"healthcheck,block"`
}

// monitorSchema is the `monitor { ... }` block: the live-monitor socket.io
// endpoint a deployment wants scheduler lifecycle events pushed to.
type monitorSchema struct {
	URL            string  `hcl:"url"`
	Namespace      *string `hcl:"namespace,optional"`
	TimeoutSeconds *int    `hcl:"timeout_seconds,optional"`
}

// healthcheckSchema is the `healthcheck { ... }` block.
type healthcheckSchema struct {
	Port *int `hcl:"port,optional"`
}
