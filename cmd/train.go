package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/adisurya/face-attendance/internal/config"
	"github.com/adisurya/face-attendance/internal/database"
	"github.com/adisurya/face-attendance/internal/extractor"
	"github.com/adisurya/face-attendance/internal/training"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Enroll identities from a dataset of reference photos",
	Long: `Enroll identities from a dataset of reference photos.
The dataset is a directory tree with one folder per person, named after that
person, containing their sample photos. Training replaces the entire roster:
existing identities are cleared first, then each person's photos are run
through the embedding extractor and averaged into a reference embedding.`,
	RunE: runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)

	trainCmd.Flags().String("dataset", "dataset", "Directory with one folder of photos per person")
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := context.Background()
	datasetDir := mustGetString(cmd, "dataset")

	people, err := training.DiscoverDataset(datasetDir)
	if err != nil {
		return fmt.Errorf("discovering dataset: %w", err)
	}
	if len(people) == 0 {
		return fmt.Errorf("no person folders with images found under %s", datasetDir)
	}

	totalImages := 0
	for _, p := range people {
		totalImages += len(p.Images)
	}
	fmt.Printf("Found %d people with %d images in %s\n", len(people), totalImages, datasetDir)

	store, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	roster := database.NewIdentityRepository(store)

	// Training replaces the roster wholesale so removed or renamed people
	// do not linger with stale embeddings.
	if err := roster.ClearAll(ctx); err != nil {
		return fmt.Errorf("clearing roster: %w", err)
	}

	client := extractor.NewClient(cfg.Extractor.URL, cfg.Extractor.Dim)

	bar := progressbar.NewOptions(totalImages,
		progressbar.OptionSetDescription("Extracting embeddings"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("photos"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)

	enrolled, skippedPeople, skippedImages := 0, 0, 0
	for _, person := range people {
		var embeddings [][]float32
		for _, imagePath := range person.Images {
			bar.Add(1)

			imageData, err := os.ReadFile(imagePath)
			if err != nil {
				fmt.Printf("\nWarning: skipping unreadable image %s: %v\n", imagePath, err)
				skippedImages++
				continue
			}

			embedding, err := client.Extract(ctx, imageData)
			if err != nil {
				if errors.Is(err, extractor.ErrNoFace) {
					fmt.Printf("\nWarning: no face found in %s, skipping\n", imagePath)
				} else {
					fmt.Printf("\nWarning: extraction failed for %s: %v\n", imagePath, err)
				}
				skippedImages++
				continue
			}
			embeddings = append(embeddings, embedding)
		}

		stored, err := training.AggregateAndStore(ctx, roster, person.ID, person.Name, embeddings)
		if err != nil {
			return fmt.Errorf("enrolling %s: %w", person.Name, err)
		}
		if stored == 0 {
			fmt.Printf("\nWarning: no usable images for %s, not enrolled\n", person.Name)
			skippedPeople++
			continue
		}
		enrolled++
	}
	fmt.Println()

	fmt.Printf("Enrolled %d identities (%d skipped, %d unusable images)\n",
		enrolled, skippedPeople, skippedImages)
	return nil
}
