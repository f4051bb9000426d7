package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/lectio/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given the layered configuration loader", t, func() {
		ctx := context.Background()

		Convey("When nothing overrides the defaults", func() {
			t.Setenv("LECTIO_CONFIG", "")

			cfg, err := config.Load(ctx)
			So(err, ShouldBeNil)
			So(cfg.Protocol, ShouldEqual, "Default")
			So(cfg.TimerMethod, ShouldEqual, config.TimerMethodTimepoint)
		})

		Convey("When a YAML file overrides the protocol", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "lectio.yaml")
			body := []byte("protocol: STROBE\ntimer_method: interval\ntimer_interval: 60\n")
			So(os.WriteFile(path, body, 0o600), ShouldBeNil)
			t.Setenv("LECTIO_CONFIG", path)

			cfg, err := config.Load(ctx)
			So(err, ShouldBeNil)
			So(cfg.Protocol, ShouldEqual, "STROBE")
			So(cfg.TimerMethod, ShouldEqual, config.TimerMethodInterval)
			So(cfg.TimerInterval, ShouldEqual, 60)

			Convey("And the untouched defaults survive", func() {
				So(len(cfg.EngagementImages), ShouldEqual, 3)
			})
		})

		Convey("When env overrides file and defaults", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "lectio.yaml")
			So(os.WriteFile(path, []byte("protocol: STROBE\n"), 0o600), ShouldBeNil)
			t.Setenv("LECTIO_CONFIG", path)
			t.Setenv("LECTIO_PROTOCOL", "COPUS")
			t.Setenv("LECTIO_LOG_LEVEL", "debug")

			cfg, err := config.Load(ctx)
			So(err, ShouldBeNil)
			So(cfg.Protocol, ShouldEqual, "COPUS")
			So(cfg.LogLevel, ShouldEqual, "debug")
		})

		Convey("When the file does not exist", func() {
			t.Setenv("LECTIO_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load(ctx)
			So(err, ShouldNotBeNil)
		})

		Convey("When the loaded values fail validation", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "lectio.yaml")
			So(os.WriteFile(path, []byte("timer_method: interval\ntimer_interval: 0\n"), 0o600), ShouldBeNil)
			t.Setenv("LECTIO_CONFIG", path)

			_, err := config.Load(ctx)
			So(err, ShouldNotBeNil)
		})
	})
}
