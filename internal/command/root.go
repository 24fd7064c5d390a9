// Package command implements the venice-image CLI.
package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/haojie06/venice-image-cli/internal/aspect"
	"github.com/haojie06/venice-image-cli/internal/logger"
	"github.com/haojie06/venice-image-cli/internal/model"
	"github.com/haojie06/venice-image-cli/internal/storage"
	"github.com/haojie06/venice-image-cli/internal/venice"
)

const apiKeyEnv = "VENICE_API_KEY"

var (
	listModels     bool
	verbose        bool
	modelName      string
	negativePrompt string
	width          int
	height         int
	aspectRatio    string
	steps          int
	cfgScale       float64
	seed           int
	stylePreset    string
	format         string
	outputPath     string
	safeMode       bool
)

var rootCmd = &cobra.Command{
	Use:   "venice-image [flags] [prompt]",
	Short: "Generate images with the Venice AI API",
	Long: `venice-image submits text-to-image generation requests to the Venice AI
API and saves the returned image to disk.

The API credential is read from the VENICE_API_KEY environment variable.

Examples:
  venice-image --list-models
  venice-image "A beautiful sunset" --model flux-dev
  venice-image "A cat in space" --ar square --output cat.png --format png
  venice-image "Mountain landscape" --negative-prompt "people, cars" --steps 30
`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the CLI. The credential check happens before anything else;
// no invocation makes sense without it.
func Execute() error {
	if os.Getenv(apiKeyEnv) == "" {
		return fmt.Errorf("%s environment variable is required", apiKeyEnv)
	}
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().BoolVar(&listModels, "list-models", false, "list available image generation models")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "show detailed output (for --list-models)")
	rootCmd.Flags().StringVar(&modelName, "model", "", "model to use for generation (default "+model.DefaultModel+")")
	rootCmd.Flags().StringVar(&negativePrompt, "negative-prompt", "", "negative prompt to avoid certain elements")
	rootCmd.Flags().IntVar(&width, "width", 0, "image width in pixels")
	rootCmd.Flags().IntVar(&height, "height", 0, "image height in pixels")
	rootCmd.Flags().StringVar(&aspectRatio, "aspect-ratio", "", "aspect ratio (square, landscape, cinema, tall, portrait, instagram, or custom like 4:3)")
	rootCmd.Flags().StringVar(&aspectRatio, "ar", "", "shorthand for --aspect-ratio")
	rootCmd.Flags().IntVar(&steps, "steps", 0, "number of inference steps")
	rootCmd.Flags().Float64Var(&cfgScale, "cfg-scale", 0, "CFG scale for prompt adherence")
	rootCmd.Flags().IntVar(&seed, "seed", 0, "random seed for reproducible results")
	rootCmd.Flags().StringVar(&stylePreset, "style-preset", "", "style preset to apply")
	rootCmd.Flags().StringVar(&format, "format", model.FormatJPEG, "output image format (jpeg, png or webp)")
	rootCmd.Flags().StringVar(&outputPath, "output", "", "output filename")
	rootCmd.Flags().BoolVar(&safeMode, "safe-mode", false, "enable safe mode content filtering")

	rootCmd.AddCommand(serveCmd)
}

func initConfig() {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			logger.Warnf("failed to read config file: %s", err)
		}
	}
	viper.SetDefault("venice.baseURL", venice.DefaultBaseURL)
	viper.SetDefault("venice.model", model.DefaultModel)
	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", "9000")
	_ = viper.BindEnv("venice.apiKey", apiKeyEnv)
}

func newClientFromConfig() (*venice.Client, error) {
	apiKey := viper.GetString("venice.apiKey")
	if apiKey == "" {
		return nil, fmt.Errorf("%s environment variable is required", apiKeyEnv)
	}
	return venice.NewClient(apiKey, venice.WithBaseURL(viper.GetString("venice.baseURL"))), nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	client, err := newClientFromConfig()
	if err != nil {
		return err
	}

	if listModels {
		return runListModels(cmd.Context(), client)
	}

	if len(args) == 0 {
		return errors.New("prompt is required for image generation, use --list-models to see available models")
	}
	prompt := args[0]

	if err := validateGenerationFlags(aspectRatio, width, height, format); err != nil {
		return err
	}
	imageWidth, imageHeight := width, height
	if aspectRatio != "" {
		if imageWidth, imageHeight, err = aspect.Resolve(aspectRatio); err != nil {
			return err
		}
	}
	if modelName == "" {
		modelName = viper.GetString("venice.model")
	}

	generation := venice.BuildGenerationRequest(prompt, modelName, model.GenerationParams{
		NegativePrompt: negativePrompt,
		Width:          imageWidth,
		Height:         imageHeight,
		Steps:          steps,
		CfgScale:       cfgScale,
		Seed:           seed,
		StylePreset:    stylePreset,
		Format:         format,
		SafeMode:       safeMode,
	})

	fmt.Printf("Generating image with model '%s'...\n", modelName)
	result, err := client.GenerateImage(cmd.Context(), generation)
	if err != nil {
		return err
	}

	imageId := result.Id
	if imageId == "" {
		imageId = "generated_image"
	}
	// the API typically returns a single image; save the first
	filename, err := storage.SaveImage(result.Images[0], outputPath, imageId, format)
	if err != nil {
		return err
	}
	fmt.Printf("Image saved as: %s\n", filename)

	if result.Timing != nil && result.Timing.Total > 0 {
		fmt.Printf("Generation completed in %.2f seconds\n", float64(result.Timing.Total)/1000)
	}
	return nil
}

// validateGenerationFlags enforces the caller-level rules that must fail
// before any network call is made.
func validateGenerationFlags(aspectRatio string, width, height int, format string) error {
	if aspectRatio != "" && (width != 0 || height != 0) {
		return errors.New("cannot specify both --ar and --width/--height")
	}
	if !model.ValidFormat(format) {
		return fmt.Errorf("invalid format %q, must be one of jpeg, png, webp", format)
	}
	return nil
}

func runListModels(ctx context.Context, client *venice.Client) error {
	list, raw, err := client.ListModels(ctx)
	if err != nil {
		return err
	}
	if verbose {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, raw, "", "  "); err != nil {
			fmt.Println(string(raw))
		} else {
			fmt.Println(pretty.String())
		}
		return nil
	}
	fmt.Println("Available models:")
	for _, m := range list.Data {
		traits := ""
		if len(m.ModelSpec.Traits) > 0 {
			traits = fmt.Sprintf(" (%s)", strings.Join(m.ModelSpec.Traits, ", "))
		}
		fmt.Printf("  - %s%s\n", m.Id, traits)
	}
	return nil
}
