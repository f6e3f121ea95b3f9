/*
Package config loads the server settings and import profiles for pll.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +-----------+-----------+-----------+
	      |                       |           |
	+-----+-----+           +----+----+  +---+---+
	|   YAML    |           |   HCL   |  |  env  |
	| Parser    |           | Parser  |  | file  |
	+-----------+           +---------+  +-------+

🎯 Purpose:
- Reads config.yml (or an .hcl equivalent) from the user config dir
- Overlays APIURL/TOKEN from config.env and the process environment
- Validates everything before a single file is touched

🔄 Flow:
1. Read the dotenv file and process environment
2. Parse the config file with the parser registered for its suffix
3. Apply environment overrides (process env > env file > config file)
4. Validate and hand the read-only Config to the caller

🔍 Example:

	cfg, err := config.Load(ctx, path, config.LoadOptions{EnvFile: config.DefaultEnvFile})
	if err != nil {
		return err
	}

	profile, err := cfg.Profile("invoices")
*/
package config
