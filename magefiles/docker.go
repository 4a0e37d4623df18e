//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/magefile/mage/sh"
)

// Redis container constants.
const (
	redisImage         = "docker.io/library/redis:7-alpine"
	redisContainerName = "dryrack-test-redis"
	redisHostPort      = "16379"
	redisAddrEnv       = "DRYRACK_TEST_REDIS_ADDR"
)

// containerRuntime returns "podman" or "docker" if a working runtime
// is available, or "" if neither is usable. It checks both that the
// binary exists on PATH and that it can connect to its daemon/machine.
func containerRuntime() string {
	for _, name := range []string{"podman", "docker"} {
		if _, err := exec.LookPath(name); err != nil {
			continue
		}
		if exec.Command(name, "info").Run() != nil {
			fmt.Fprintf(os.Stderr, "WARNING: %s found on PATH but not usable (is the daemon/machine running?)\n", name)
			continue
		}
		return name
	}
	return ""
}

// startRedis runs a throwaway redis container published on redisHostPort.
func startRedis(rt string) error {
	fmt.Fprintln(os.Stderr, "Starting redis container...")
	return sh.Run(rt, "run", "-d", "--rm",
		"--name", redisContainerName,
		"-p", "127.0.0.1:"+redisHostPort+":6379",
		redisImage)
}

// stopRedis stops the container. Errors are ignored because the
// container may already be gone.
func stopRedis(rt string) {
	fmt.Fprintln(os.Stderr, "Stopping redis container...")
	_ = exec.Command(rt, "stop", redisContainerName).Run()
}

// waitRedis polls the container until redis answers PING.
func waitRedis(rt string) error {
	for range 20 {
		out, err := sh.Output(rt, "exec", redisContainerName, "redis-cli", "ping")
		if err == nil && out == "PONG" {
			return nil
		}
		time.Sleep(250 * time.Millisecond)
	}
	return fmt.Errorf("redis container did not become ready")
}

// Redis starts a redis container and runs the storage tests against it.
func (Test) Redis() error {
	rt := containerRuntime()
	if rt == "" {
		return fmt.Errorf("no container runtime found (tried podman, docker)")
	}

	if err := startRedis(rt); err != nil {
		return fmt.Errorf("start redis: %w", err)
	}
	defer stopRedis(rt)
	if err := waitRedis(rt); err != nil {
		return err
	}

	env := map[string]string{redisAddrEnv: "127.0.0.1:" + redisHostPort}
	return sh.RunWithV(env, binGo, "test", "-v", "-run", "Redis", "./internal/storage/...")
}
