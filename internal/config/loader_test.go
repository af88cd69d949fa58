package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/netmon/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":3000")
				convey.So(cfg.APIURL, convey.ShouldEqual, "http://localhost:8080/api")
				convey.So(cfg.APITimeoutMS, convey.ShouldEqual, 10_000)
			})
		})

		convey.Convey("When the API URL is overridden through the environment", func() {
			_ = os.Setenv("NETMON_API_URL", "https://netmon-api.internal/api")

			cfg, err := config.Load(ctx)

			convey.Convey("Then the override wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.APIURL, convey.ShouldEqual, "https://netmon-api.internal/api")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("NETMON_ADDR", ":8081")
			_ = os.Setenv("NETMON_API_TIMEOUT_MS", "2500")
			_ = os.Setenv("NETMON_PROJECT_ID", "net-prod")
			_ = os.Setenv("NETMON_LOG_LEVEL", "debug")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8081")
				convey.So(cfg.APITimeoutMS, convey.ShouldEqual, 2500)
				convey.So(cfg.ProjectID, convey.ShouldEqual, "net-prod")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
# dashboard settings
addr: ":9090"
api_url: "http://backend:8080/api"
api_timeout_ms: 5000
project_id: "net-staging"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("NETMON_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.APIURL, convey.ShouldEqual, "http://backend:8080/api")
				convey.So(cfg.APITimeoutMS, convey.ShouldEqual, 5000)
				convey.So(cfg.ProjectID, convey.ShouldEqual, "net-staging")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
api_url: "http://backend:8080/api"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("NETMON_CONFIG", tmpFile)
			_ = os.Setenv("NETMON_API_URL", "http://override:8080/api")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.APIURL, convey.ShouldEqual, "http://override:8080/api")
				convey.So(cfg.APITimeoutMS, convey.ShouldEqual, 10_000)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("NETMON_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("NETMON_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("NETMON_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the API URL is relative", func() {
			_ = os.Setenv("NETMON_API_URL", "/api")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "api_url")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the timeout is not positive", func() {
			_ = os.Setenv("NETMON_API_TIMEOUT_MS", "0")

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the timeout is not a number", func() {
			_ = os.Setenv("NETMON_API_TIMEOUT_MS", "soon")

			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"NETMON_CONFIG",
		"NETMON_ADDR",
		"NETMON_API_URL",
		"NETMON_API_TIMEOUT_MS",
		"NETMON_PROJECT_ID",
		"NETMON_LOG_LEVEL",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "netmon-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
