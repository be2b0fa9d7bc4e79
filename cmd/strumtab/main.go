// Command strumtab works with strumstick tablature project files: it
// validates them, converts between the legacy grid and NoteStack formats (and
// between YAML and JSON), exports MIDI and WAV, and plays them.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aheikkila/strumtab"
	"github.com/aheikkila/strumtab/gomidi"
	"github.com/aheikkila/strumtab/oto"
	"github.com/aheikkila/strumtab/synth"
)

var (
	tempo int
	pcm16 bool
)

var rootCmd = &cobra.Command{
	Use:           "strumtab",
	Short:         "strumstick tablature toolbox",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var validateCmd = &cobra.Command{
	Use:   "validate <project>",
	Short: "Check a project file for structural problems",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := readProject(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%v: ok (%v stacks)\n", args[0], len(p.Tab))
		return nil
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Rewrite a project file; legacy grid payloads come out as NoteStacks",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := readProject(args[0])
		if err != nil {
			return err
		}
		p.Version = strumtab.ProjectVersion
		p.Grid = nil
		f, err := os.Create(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		return strumtab.WriteProject(f, p, filepath.Ext(args[1]))
	},
}

var midiCmd = &cobra.Command{
	Use:   "midi <project> <out.mid>",
	Short: "Export the playback sequence as a standard MIDI file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := readProject(args[0])
		if err != nil {
			return err
		}
		f, err := os.Create(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		return gomidi.WriteSMF(f, p.Tab, projectTempo(p), p.TimeSignature)
	},
}

var wavCmd = &cobra.Command{
	Use:   "wav <project> <out.wav>",
	Short: "Render through the pluck synth and write a .wav file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		buffer, err := renderProject(args[0])
		if err != nil {
			return err
		}
		contents, err := strumtab.Wav(buffer, pcm16)
		if err != nil {
			return err
		}
		return os.WriteFile(args[1], contents, 0644)
	},
}

var playCmd = &cobra.Command{
	Use:   "play <project>",
	Short: "Render through the pluck synth and play on the audio device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		buffer, err := renderProject(args[0])
		if err != nil {
			return err
		}
		context, err := oto.NewContext()
		if err != nil {
			return fmt.Errorf("could not acquire audio context: %v", err)
		}
		defer context.Close()
		output := context.Output()
		if err := output.WriteAudio(buffer); err != nil {
			return err
		}
		return output.Close()
	},
}

func readProject(path string) (strumtab.Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return strumtab.Project{}, err
	}
	defer f.Close()
	return strumtab.ReadProject(f)
}

// projectTempo applies the command line override, clamped the same way the
// editor's transport clamps it.
func projectTempo(p strumtab.Project) int {
	if tempo > 0 {
		return strumtab.NewTransport().WithTempo(tempo).Tempo
	}
	return p.BPM
}

func renderProject(path string) ([]float32, error) {
	p, err := readProject(path)
	if err != nil {
		return nil, err
	}
	return strumtab.Render(synth.NewPluck(), p.Tab, projectTempo(p))
}

func main() {
	rootCmd.PersistentFlags().IntVar(&tempo, "tempo", 0, "override the project tempo (BPM)")
	wavCmd.Flags().BoolVar(&pcm16, "pcm16", false, "write 16-bit PCM instead of 32-bit floats")
	rootCmd.AddCommand(validateCmd, convertCmd, midiCmd, wavCmd, playCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
