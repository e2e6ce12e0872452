/*
Package config loads rxgrid settings from an optional file and the environment.

	            +-------------+
	            |   Config    |
	            |  defaults   |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   JSON   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+-----+----+ +-----+----+ +-----+----+
	      |            |            |
	      +------------+------------+
	                   |
	            +------+------+
	            |  RXGRID_*   |
	            |  env (viper)|
	            +------+------+
	                   |
	               Validate

🎯 Purpose:
- Reads .rxgrid.yaml, .rxgrid.yml, .rxgrid.json or .rxgrid.hcl
- Fills anything the file leaves out from Defaults
- Lets RXGRID_* environment variables override the file

🔄 Precedence (lowest first):
 1. Defaults
 2. Config file
 3. Environment, e.g. RXGRID_SERVER_BASE_URL, RXGRID_DISPLAY_MAX_ROWS

📝 Formats:

	# .rxgrid.yaml
	server:
	  base_url: http://localhost:8000
	transform:
	  replacement: "[hidden]"
	  normalize_phone: true

	# .rxgrid.hcl
	server {
	  base_url = env.RXGRID_BACKEND
	}
	display {
	  max_rows = 50
	}

HCL files may read the process environment through the env object.

🔍 Example:

	cfg, err := config.Load(ctx, "")
	if err != nil {
		return err
	}
	backend, err := remote.Open(ctx, cfg.Server.BaseURL)
*/
package config
