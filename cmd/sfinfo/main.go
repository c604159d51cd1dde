// Command sfinfo reports what the native layer supports: shaders, the
// desktop video mode and the fullscreen modes of the primary monitor.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"sfbind/graphics"
	"sfbind/opengl"
	"sfbind/window"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the exit code so deferred cleanup happens before exiting.
func run(args []string) int {
	fs := flag.NewFlagSet("sfinfo", flag.ContinueOnError)
	var (
		interactive = fs.Bool("i", false, "Browse fullscreen modes interactively")
		verbose     = fs.Bool("v", false, "Log native driver activity")
		vertPath    = fs.String("vert", "", "Vertex shader file to try compiling")
		fragPath    = fs.String("frag", "", "Fragment shader file to try compiling")
		visible     = fs.Bool("show", false, "Show the context window")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer l.Sync()
		opengl.SetLogger(l)
	}

	if *interactive && !isTerminal() {
		fmt.Fprintln(os.Stderr, "Error: -i needs an interactive terminal")
		return 2
	}

	cfg := opengl.DefaultConfig()
	cfg.Visible = *visible
	drv, err := opengl.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer drv.Close()

	rep := collect()
	if *interactive {
		if err := runInteractive(rep); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	fmt.Print(rep.render())
	if *vertPath != "" || *fragPath != "" {
		if err := tryShader(optional(*vertPath), optional(*fragPath)); err != nil {
			fmt.Println(errorStyle.Render("shader: " + err.Error()))
			return 1
		}
		fmt.Println(okStyle.Render("shader: compiled and linked"))
	}
	return 0
}

// report is gathered on the main thread; GLFW must not be queried from
// anywhere else.
type report struct {
	shaders    bool
	desktop    window.VideoMode
	fullscreen []window.VideoMode
	valid      []bool
}

func collect() report {
	rep := report{
		shaders: graphics.IsShaderAvailable(),
		desktop: window.DesktopMode(),
	}
	if modes, ok := window.FullscreenModes(); ok {
		rep.fullscreen = modes
		for _, m := range modes {
			rep.valid = append(rep.valid, m.IsValid())
		}
	}
	return rep
}

func (r report) render() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("sfinfo") + "\n\n")

	shaders := errorStyle.Render("unavailable")
	if r.shaders {
		shaders = okStyle.Render("available")
	}
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("shaders:"), shaders)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("desktop:"), r.desktop)

	if len(r.fullscreen) == 0 {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("fullscreen:"), dimStyle.Render("none"))
		return b.String()
	}
	fmt.Fprintf(&b, "%s\n", labelStyle.Render("fullscreen:"))
	for _, m := range r.fullscreen {
		line := "  " + m.String()
		if m == r.desktop {
			line += dimStyle.Render(" (desktop)")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func tryShader(vert, frag *string) error {
	s, err := graphics.ShaderFromFile(vert, frag)
	if err != nil {
		return err
	}
	s.Destroy()
	return nil
}

var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
