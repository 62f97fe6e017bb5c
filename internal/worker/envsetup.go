package worker

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// bootstrapEnv prepares the worker process environment before the first task.
// Mutations stay confined to this process; nothing propagates back to the
// controller.
func bootstrapEnv(opts Options, log func(string)) {
	if runtime.GOOS == "windows" {
		loadDeveloperEnv(log)
	}
	if opts.EnvScript != "" {
		if err := loadEnvScript(opts.EnvScript); err != nil {
			log("failed to load env script " + opts.EnvScript + ": " + err.Error())
		} else {
			log("loaded env script " + opts.EnvScript)
		}
	}
}

// loadDeveloperEnv locates the newest Visual Studio installation through
// vswhere and imports the vcvarsall.bat x64 environment, so cl.exe and
// friends resolve for native configure steps.
func loadDeveloperEnv(log func(string)) {
	vcvarsall := findVcvarsall()
	if vcvarsall == "" {
		log("vswhere not found, skipping vcvarsall")
		return
	}

	cmd := exec.Command("cmd", "/c", "call \""+vcvarsall+"\" x64 && set")
	output, err := cmd.Output()
	if err != nil {
		log("failed to load vcvarsall.bat: " + err.Error())
		return
	}

	importEnvLines(string(output))
	log("loaded vcvarsall.bat environment")
}

func findVcvarsall() string {
	vswhere := `C:\Program Files (x86)\Microsoft Visual Studio\Installer\vswhere.exe`
	if _, err := os.Stat(vswhere); err != nil {
		return ""
	}

	out, err := exec.Command(vswhere,
		"-latest",
		"-products", "*",
		"-requires", "Microsoft.VisualStudio.Component.VC.Tools.x86.x64",
		"-property", "installationPath",
	).Output()
	if err != nil {
		return ""
	}

	installation := strings.TrimSpace(string(out))
	if installation == "" {
		return ""
	}

	vcvarsall := filepath.Join(installation, "VC", "Auxiliary", "Build", "vcvarsall.bat")
	if _, err := os.Stat(vcvarsall); err != nil {
		return ""
	}
	return vcvarsall
}

// loadEnvScript sources a shell script and imports the environment it leaves
// behind.
func loadEnvScript(path string) error {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/c", "call \""+path+"\" && set")
	} else {
		cmd = exec.Command("sh", "-c", ". "+shellQuote(path)+" && env")
	}

	output, err := cmd.Output()
	if err != nil {
		return err
	}

	importEnvLines(string(output))
	return nil
}

func importEnvLines(output string) {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		key, value, ok := strings.Cut(line, "=")
		if !ok || key == "" {
			continue
		}
		os.Setenv(key, value)
	}
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
