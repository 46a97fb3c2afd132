package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/exam-tools/omrsheet/collate"
	"github.com/exam-tools/omrsheet/cover"
	"github.com/exam-tools/omrsheet/dsl"
	"github.com/exam-tools/omrsheet/exam"
	"github.com/exam-tools/omrsheet/layout"
	"github.com/exam-tools/omrsheet/render"
	canvasrenderer "github.com/exam-tools/omrsheet/render/canvas"
)

func main() {
	examFile := flag.String("exam", "", "path of a .exam definition file; replaces the exam flags below")

	paper := flag.String("paper", "A4", "paper preset (A4 or LETTER)")
	title := flag.String("title", "Antworten", "sheet title")
	courseName := flag.String("course-name", "", "course name printed in the header")
	professor := flag.String("professor", "", "professor name printed in the header")
	examDate := flag.String("exam-date", "", "exam date (defaults to today)")
	numQuestions := flag.Int("num-questions", 0, "number of questions")
	optionsPerQuestion := flag.String("options-per-question", "2", "repeating option-count pattern, e.g. 2,4,3")
	optionsList := flag.String("options-list", "", "explicit per-question option counts (length must equal -num-questions)")
	columns := flag.Int("columns", 5, "maximum column count")
	forceColumns := flag.Bool("force-columns", false, "use exactly -columns columns regardless of fit")
	rowGap := flag.String("row-gap", "0mm", "extra gap between question rows")
	colGap := flag.String("col-gap", "0mm", "extra gap between columns")
	boxSize := flag.String("box-size", "3.5mm", "answer-box side length")
	idStart := flag.Int("student-id-start", 1, "first student identifier")
	idCount := flag.Int("student-id-count", 1, "number of student identifiers")
	answerKey := flag.String("answer-key", "", "comma-separated answer key (indices or letters)")
	outDir := flag.String("outdir", "out", "output directory")
	prefix := flag.String("answer-sheet-prefix", "", "prefix prepended to question numbers, e.g. 'A'")
	coverTex := flag.String("cover-tex", "", "LaTeX body fragment to embed on the cover sheet")
	coverTitle := flag.String("cover-title", "Exam paper", "label printed next to the student ID on the cover")
	noCover := flag.Bool("no-cover", false, "disable cover generation even if -cover-tex is set")
	perStudent := flag.Bool("per-student", false, "also keep individual per-student PDFs")
	keepTemp := flag.Bool("keep-temp", false, "do not delete the intermediate per-student PDFs")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	_ = godotenv.Load() // .env is optional

	var cfg *exam.Config
	if *examFile != "" {
		loaded, err := loadExamFile(*examFile)
		if err != nil {
			log.Fatal().Err(err).Msg("loading exam definition failed")
		}
		cfg = loaded
	} else {
		cfg = &exam.Config{
			Paper:          *paper,
			Title:          *title,
			Course:         *courseName,
			Professor:      *professor,
			Date:           *examDate,
			NumQuestions:   *numQuestions,
			OptionsSpec:    *optionsPerQuestion,
			OptionsList:    *optionsList,
			Columns:        *columns,
			ForceColumns:   *forceColumns,
			QuestionPrefix: *prefix,
			IDStart:        *idStart,
			IDCount:        *idCount,
			AnswerKeySpec:  *answerKey,
			OutDir:         *outDir,
			CoverContent:   *coverTex,
			CoverTitle:     *coverTitle,
			NoCover:        *noCover,
			PerStudent:     *perStudent,
			KeepTemp:       *keepTemp,
		}
		var err error
		if cfg.RowGapMM, err = lengthMM(*rowGap); err != nil {
			log.Fatal().Err(err).Msg("invalid -row-gap")
		}
		if cfg.ColGapMM, err = lengthMM(*colGap); err != nil {
			log.Fatal().Err(err).Msg("invalid -col-gap")
		}
		if cfg.BoxSizeMM, err = lengthMM(*boxSize); err != nil {
			log.Fatal().Err(err).Msg("invalid -box-size")
		}
	}

	// Header metadata falls back to the environment so course setups can
	// live in a .env next to the exam files.
	if cfg.Course == "" {
		cfg.Course = os.Getenv("OMRSHEET_COURSE")
	}
	if cfg.Professor == "" {
		cfg.Professor = os.Getenv("OMRSHEET_PROFESSOR")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("generation failed")
	}
	fmt.Printf("Done. Output in %s\n", cfg.OutDir)
}

// run normalizes the config, computes the layout once and hands the job
// to the collator.
func run(cfg *exam.Config, log zerolog.Logger) error {
	if err := cfg.Normalize(time.Now()); err != nil {
		return err
	}

	paper, err := layout.PaperByName(cfg.Paper)
	if err != nil {
		return err
	}
	l, err := layout.Compute(layout.Params{
		Paper:          paper,
		Title:          cfg.Title,
		QuestionPrefix: cfg.QuestionPrefix,
		NumQuestions:   cfg.NumQuestions,
		OptionCounts:   cfg.OptionCounts,
		Columns:        cfg.Columns,
		ForceColumns:   cfg.ForceColumns,
		RowGap:         cfg.RowGapMM,
		ColGap:         cfg.ColGapMM,
		BoxSize:        cfg.BoxSizeMM,
		AnswerKey:      cfg.AnswerKey,
	})
	if err != nil {
		return err
	}

	renderer, err := canvasrenderer.NewRenderer()
	if err != nil {
		return err
	}

	coverContent := ""
	if cfg.CoverEnabled() {
		coverContent = cfg.CoverContent
	}

	collator := collate.New(renderer, &cover.PDFLaTeX{}, collate.NewMerger(), log)
	return collator.Run(collate.Job{
		Layout: l,
		Header: render.Header{
			Course:    cfg.Course,
			Professor: cfg.Professor,
			Date:      cfg.Date,
		},
		IDStart:      cfg.IDStart,
		IDCount:      cfg.IDCount,
		OutDir:       cfg.OutDir,
		CoverContent: coverContent,
		CoverTitle:   cfg.CoverTitle,
		PerStudent:   cfg.PerStudent,
		KeepTemp:     cfg.KeepTemp,
	})
}

func loadExamFile(path string) (*exam.Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open exam definition %s: %w", path, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse exam definition %s: %w", path, err)
	}
	return dsl.Resolve(doc)
}

func lengthMM(s string) (float64, error) {
	l, err := layout.ParseLength(s)
	if err != nil {
		return 0, err
	}
	return l.ToMM(), nil
}
