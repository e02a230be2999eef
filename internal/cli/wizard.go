package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/breast-cancer-risk-assessment/internal/domain"
)

// prompter asks questions line by line. The first read error is kept and later
// questions are answered with an empty line.
type prompter struct {
	r   *bufio.Reader
	w   io.Writer
	err error
}

func (p *prompter) ask(question string) string {
	if p.err != nil {
		return ""
	}
	fmt.Fprint(p.w, question)
	line, err := p.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		p.err = err
		return ""
	}
	return strings.TrimSpace(line)
}

func (p *prompter) confirm(question string) bool {
	switch strings.ToLower(p.ask(question + " [y/N]: ")) {
	case "y", "yes", "j", "ja":
		return true
	default:
		return false
	}
}

// entry is one "<relation> [value]" answer.
type entry struct {
	relation string
	value    string
}

// parseEntry splits off the last word as the value when isValue accepts it.
func parseEntry(line string, isValue func(string) bool) entry {
	line = strings.TrimSpace(line)
	i := strings.LastIndexByte(line, ' ')
	if i < 0 || isValue == nil || !isValue(line[i+1:]) {
		return entry{relation: line}
	}
	return entry{relation: strings.TrimSpace(line[:i]), value: line[i+1:]}
}

func isAge(s string) bool {
	_, err := domain.AgeInput{Raw: s, Set: true}.Int()
	return err == nil
}

func isAbnormality(s string) bool {
	return domain.GeneticAbnormality(s).IsValid()
}

// entries collects answers until an empty line.
func (p *prompter) entries(title, hint string, isValue func(string) bool) []entry {
	fmt.Fprintf(p.w, "\n%s\n  %s\n  Leave the line empty to finish.\n", title, hint)
	var out []entry
	for i := 1; ; i++ {
		line := p.ask(fmt.Sprintf("  %d> ", i))
		if line == "" {
			return out
		}
		out = append(out, parseEntry(line, isValue))
	}
}

// storageKey builds the scoped relation key the normalizer resolves.
func storageKey(scope domain.Side, relation string) string {
	return fmt.Sprintf("%s_%s", scope, relation)
}

func ageAnswer(s string) domain.AgeInput {
	return domain.AgeInput{Raw: s, Set: s != ""}
}

func (p *prompter) breastCancer(scope domain.Side, title string) []domain.RawFamilyMember {
	var out []domain.RawFamilyMember
	for _, e := range p.entries(title, "Relation and age at diagnosis, e.g. \"aunt 52\".", isAge) {
		out = append(out, domain.RawFamilyMember{
			Relation:     storageKey(scope, e.relation),
			DiagnosisAge: ageAnswer(e.value),
		})
	}
	return out
}

func (p *prompter) geneticTests(scope domain.Side, title string) []domain.RawGeneticTest {
	var out []domain.RawGeneticTest
	for _, e := range p.entries(title, "Relation and result (BRCA1, BRCA2, none, unknown), e.g. \"mother BRCA1\".", isAbnormality) {
		out = append(out, domain.RawGeneticTest{
			Relation:    storageKey(scope, e.relation),
			Abnormality: e.value,
		})
	}
	return out
}

func (p *prompter) relatives(title string) []domain.RawRelativeRef {
	var out []domain.RawRelativeRef
	for _, e := range p.entries(title, "One relation per line.", nil) {
		out = append(out, domain.RawRelativeRef{Relation: storageKey(domain.SideImmediate, e.relation)})
	}
	return out
}

// questionnaire walks through the questionnaire steps and returns the answers as a raw
// submission.
func (c *CLI) questionnaire() (*domain.RawSubmission, error) {
	p := &prompter{r: c.reader, w: c.stdout}
	raw := &domain.RawSubmission{}

	fmt.Fprintln(c.stdout, "Breast cancer risk questionnaire")
	fmt.Fprintln(c.stdout, "================================")

	// Step 1: Personal history
	personal := &raw.PersonalInfo
	personal.Age = ageAnswer(p.ask("Your age: "))
	if p.confirm("Have you been diagnosed with breast cancer?") {
		personal.HasBreastCancer = true
		personal.DiagnosisAge = ageAnswer(p.ask("Age at diagnosis: "))
	}
	personal.HadGeneticTest = p.confirm("Have you had a genetic test?")
	personal.FamilyHadGeneticTest = p.confirm("Has a relative had a genetic test?")

	// Step 2: Family history
	raw.HasFamilyHistory = p.confirm("Is there cancer in your family?")
	if !raw.HasFamilyHistory {
		return raw, p.err
	}
	family := &raw.FamilyHistory

	inFamily := p.confirm("Has a relative had breast cancer?")
	family.HasBreastCancerInFamily = &inFamily
	if inFamily {
		family.Immediate = p.breastCancer(domain.SideImmediate, "Breast cancer: parents, siblings and children")
		family.MaternalFamilyMembers = p.breastCancer(domain.SideMaternal, "Breast cancer: mother's side (grandparents, aunts, uncles, half-siblings)")
		family.PaternalFamilyMembers = p.breastCancer(domain.SidePaternal, "Breast cancer: father's side (grandparents, aunts, uncles, half-siblings)")
	}

	if personal.FamilyHadGeneticTest {
		family.ImmediateGeneticTest = p.geneticTests(domain.SideImmediate, "Genetic tests: parents, siblings and children")
		family.MaternalGeneticTest = p.geneticTests(domain.SideMaternal, "Genetic tests: mother's side")
		family.PaternalGeneticTest = p.geneticTests(domain.SidePaternal, "Genetic tests: father's side")
	}

	// Step 3: Other cancers in the immediate family
	family.OvarianCancer = p.relatives("Ovarian cancer (mother, sister, daughter)")
	family.MaleBreastCancer = p.relatives("Male breast cancer (father, brother, son)")
	family.PancreaticCancer = p.relatives("Pancreatic cancer (parents, siblings, children)")

	for _, e := range p.entries("Prostate cancer before 60 (father, brother, son)", "Relation and optional age, e.g. \"father 55\".", isAge) {
		family.ProstateCancer = append(family.ProstateCancer, domain.RawProstateCancer{
			Relation:     storageKey(domain.SideImmediate, e.relation),
			DiagnosisAge: ageAnswer(e.value),
		})
	}
	for _, e := range p.entries("Breast cancer diagnosed twice (mother, sister, daughter)", "Relation and age at the first diagnosis, e.g. \"sister 48\".", isAge) {
		family.MultipleBreastCancer = append(family.MultipleBreastCancer, domain.RawMultipleBreastCancer{
			Relation:          storageKey(domain.SideImmediate, e.relation),
			FirstDiagnosisAge: ageAnswer(e.value),
		})
	}

	return raw, p.err
}

// runWizard fills in the questionnaire interactively and prints the assessment.
func (c *CLI) runWizard(ctx context.Context, args []string) error {
	fs, configPath := c.newFlagSet("wizard")
	asJSON := addExportFlags(fs)
	save := fs.String("save", "", "also write the answers as a submission JSON file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := c.newSession(fs, *configPath)
	if err != nil {
		return err
	}
	defer s.Close()

	raw, err := c.questionnaire()
	if err != nil {
		return fmt.Errorf("failed to read answers: %w", err)
	}
	fmt.Fprintln(c.stdout)

	if *save != "" {
		if err := saveSubmission(*save, raw); err != nil {
			return err
		}
		s.logger.WithField("path", *save).Info("Saved questionnaire answers")
	}

	svc := s.service()
	assessment, err := svc.Assess(ctx, raw)
	if err != nil {
		c.printValidationErrors(err)
		return err
	}
	return c.present(s, svc, assessment, *asJSON)
}

func saveSubmission(path string, raw *domain.RawSubmission) error {
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to save answers: %w", err)
	}
	return nil
}
