// Package config loads a relocation run's configuration: cluster,
// solver, and cross-correlation options bundled into one RunConfig,
// unmarshalled from YAML with environment overrides. This is ambient
// infrastructure supporting the relocation engine, mirrored on
// FabianUB-minibarcelona3d/apps/api/main.go's godotenv.Load/Overload
// layering and gopkg.in/yaml.v3, the teacher's own indirect dependency
// promoted here to direct, first-class use.
package config
