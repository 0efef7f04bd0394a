package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "image/jpeg"

	_ "golang.org/x/image/webp"

	"github.com/yyyoichi/lowrank"
)

func main() {
	input := flag.String("i", "", "input image (png, jpeg or webp)")
	factorsPath := flag.String("factors", "", "SVD service response (json) used instead of -i")
	width := flag.Int("w", 0, "image width for -factors")
	height := flag.Int("h", 0, "image height for -factors")
	ranksFlag := flag.String("ranks", "1,5,20,50", "comma separated ranks to render")
	maxDimension := flag.Int("max", 512, "longer side of the image before factorization")
	outDir := flag.String("o", ".", "output directory")
	flag.Parse()

	ranks, err := parseRanks(*ranksFlag)
	if err != nil {
		log.Fatalf("Invalid -ranks: %v", err)
	}

	ctx := context.Background()
	var batch *lowrank.Batch
	switch {
	case *factorsPath != "":
		batch, err = loadFactors(*factorsPath, *width, *height)
	case *input != "":
		batch, err = loadImage(ctx, *input, *maxDimension)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Image %dx%d, full rank %d", batch.Bounds().Dx(), batch.Bounds().Dy(), batch.FullRank())

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	for _, rank := range ranks {
		if rank > batch.FullRank() {
			log.Printf("Skip rank %d: exceeds full rank %d", rank, batch.FullRank())
			continue
		}
		img, err := batch.Render(ctx, rank)
		if err != nil {
			log.Fatalf("Failed to render rank %d: %v", rank, err)
		}
		path := filepath.Join(*outDir, fmt.Sprintf("rank_%d.png", rank))
		if err := writePNG(path, img); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		log.Printf("rank=%d frobenius_error=%.3f -> %s", rank, batch.FrobeniusError(rank), path)
	}
}

func loadImage(ctx context.Context, path string, maxDimension int) (*lowrank.Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return lowrank.NewBatch(ctx, src, lowrank.WithMaxDimension(maxDimension))
}

func loadFactors(path string, width, height int) (*lowrank.Batch, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("-w and -h are required with -factors")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	factors, err := decodeFactors(f, width, height)
	if err != nil {
		return nil, err
	}
	return lowrank.NewBatchFromFactors(factors[0], factors[1], factors[2])
}

func parseRanks(s string) ([]int, error) {
	var ranks []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		rank, err := strconv.Atoi(field)
		if err != nil {
			return nil, err
		}
		if rank < 0 {
			return nil, fmt.Errorf("negative rank %d", rank)
		}
		ranks = append(ranks, rank)
	}
	return ranks, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
