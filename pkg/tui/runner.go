// Package tui drives the fiche technique wizard from a terminal. Each step is
// asked field by field; the navigator gates every move forward on the step's
// schema, and the recap step submits the whole form.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-fiche/pkg/autofill"
	"github.com/goliatone/go-fiche/pkg/directory"
	"github.com/goliatone/go-fiche/pkg/fiche"
	"github.com/goliatone/go-fiche/pkg/form"
	"github.com/goliatone/go-fiche/pkg/levels"
	"github.com/goliatone/go-fiche/pkg/recap"
	"github.com/goliatone/go-fiche/pkg/submission"
	"github.com/goliatone/go-fiche/pkg/validation"
	"github.com/goliatone/go-fiche/pkg/wizard"
)

// Prompt messages of the navigation menus.
const (
	MenuNavigation = "Navigation"
	MenuRecap      = "Récapitulatif"
	MenuGoTo       = "Aller à l'étape"
)

const (
	actionNext = iota
	actionPrevious
	actionGoTo
	actionQuit
)

var (
	navActions   = []string{"Suivant", "Précédent", "Aller à une étape", "Quitter"}
	recapActions = []string{"Soumettre", "Précédent", "Aller à une étape", "Quitter"}
	entityTypes  = []fiche.EntityType{fiche.EntityNouveau, fiche.EntityExistant}

	headerStyle = lipgloss.NewStyle().Bold(true)
)

type textField struct {
	path      string
	label     string
	help      string
	multiline bool
}

var (
	etablissementFields = []textField{
		{path: fiche.PathEtablissementSigle, label: "Sigle"},
		{path: fiche.PathEtablissementRaison, label: "Raison sociale"},
		{path: fiche.PathEtablissementEmail, label: "Email"},
		{path: fiche.PathEtablissementAdresse, label: "Adresse postale"},
		{path: fiche.PathEtablissementContact, label: "Contact"},
		{path: fiche.PathEtablissementSiteWeb, label: "Site web", help: "Optionnel"},
	}
	encadreurFields = []textField{
		{path: fiche.PathEncadreurNom, label: "Nom"},
		{path: fiche.PathEncadreurPrenoms, label: "Prénoms"},
		{path: fiche.PathEncadreurEmail, label: "Email"},
		{path: fiche.PathEncadreurContact, label: "Téléphone"},
	}
	aspectFields = []textField{
		{path: fiche.PathAspectPlanning, label: "Planning prévisionnel", multiline: true},
		{path: fiche.PathAspectLogiciel, label: "Moyens logiciels"},
		{path: fiche.PathAspectMateriel, label: "Moyens matériels"},
	}
)

// Runner owns one wizard session over a form.
type Runner struct {
	form      *form.Form
	dir       directory.Directory
	submitter *submission.Submitter
	nav       *wizard.Navigator
	autofill  *autofill.Resolver
	recap     *recap.Builder

	driver    PromptDriver
	out       io.Writer
	pageSize  int
	anneeUniv string
	catalog   *directory.Catalog
	theme     Theme
	logger    *slog.Logger
}

// New wires a runner. submitter may be nil for a dry run that stops at the
// recap.
func New(f *form.Form, dir directory.Directory, submitter *submission.Submitter, opts ...Option) (*Runner, error) {
	if f == nil {
		return nil, errors.New("tui: form is nil")
	}
	if dir == nil {
		return nil, errors.New("tui: directory is nil")
	}
	r := &Runner{
		form:      f,
		dir:       dir,
		submitter: submitter,
		out:       os.Stdout,
		pageSize:  directory.DefaultLimit,
		theme:     DefaultTheme,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(r.out, WithErrorIcon(r.theme.ErrorPrefix))
	}
	r.nav = wizard.New(f, wizard.WithLogger(r.logger))
	r.autofill = autofill.New(dir, f, autofill.WithLogger(r.logger))
	r.recap = recap.NewBuilder(recap.WithDirectory(dir), recap.WithLogger(r.logger))
	return r, nil
}

// Navigator exposes the step state machine.
func (r *Runner) Navigator() *wizard.Navigator {
	return r.nav
}

// Run loops until the fiche is submitted or the user quits. Quitting returns
// ErrAborted; the form keeps whatever was entered.
func (r *Runner) Run(ctx context.Context) (submission.Payload, error) {
	r.prepare(ctx)
	for {
		if err := ctx.Err(); err != nil {
			return submission.Payload{}, err
		}
		if err := r.info(ctx, r.header()); err != nil {
			return submission.Payload{}, err
		}
		if r.nav.IsLast() {
			payload, done, err := r.review(ctx)
			if err != nil || done {
				return payload, err
			}
			continue
		}
		step := r.nav.CurrentStep()
		if err := r.promptStep(ctx, step.ID); err != nil {
			return submission.Payload{}, err
		}
		if err := r.navigate(ctx, step.ID); err != nil {
			return submission.Payload{}, err
		}
	}
}

func (r *Runner) prepare(ctx context.Context) {
	if r.catalog == nil {
		cat := directory.LoadCatalog(ctx, r.dir, r.pageSize, r.logger)
		r.catalog = &cat
	}
	r.form.SetSchemas(validation.NewSet(
		validation.WithParcours(directory.IDs(r.catalog.Parcours)...),
		validation.WithSpecialites(directory.IDs(r.catalog.Specialites)...),
	))
}

func (r *Runner) header() string {
	step := r.nav.CurrentStep()
	title := fmt.Sprintf("[%d/%d] %s", r.nav.Current()+1, len(r.nav.Steps()), step.Title)
	return fmt.Sprintf("%s · %s (%d%%)", headerStyle.Render(title), step.Subtitle, r.nav.Progress())
}

func (r *Runner) navigate(ctx context.Context, stepID string) error {
	idx, err := r.driver.Select(ctx, SelectConfig{Message: MenuNavigation, Options: navActions})
	if err != nil {
		return err
	}
	switch idx {
	case actionNext:
		if !r.nav.Next() {
			return r.showStepErrors(ctx, stepID)
		}
	case actionPrevious:
		if !r.nav.Previous() {
			return r.info(ctx, "Vous êtes déjà à la première étape.")
		}
	case actionGoTo:
		return r.goTo(ctx)
	case actionQuit:
		return ErrAborted
	}
	return nil
}

func (r *Runner) goTo(ctx context.Context) error {
	steps := r.nav.Steps()
	labels := make([]string, len(steps))
	for i, step := range steps {
		mark := " "
		if r.nav.Status(i).Completed {
			mark = "✓"
		}
		labels[i] = fmt.Sprintf("%s %d. %s", mark, i+1, step.Title)
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      MenuGoTo,
		Options:      labels,
		DefaultIndex: r.nav.Current(),
	})
	if err != nil {
		return err
	}
	if idx == r.nav.Current() {
		return nil
	}
	if !r.nav.GoTo(idx) {
		if idx == r.nav.Current()+1 {
			return r.showStepErrors(ctx, r.nav.CurrentStep().ID)
		}
		return r.warn(ctx, "Cette étape n'est pas encore accessible.")
	}
	return nil
}

// review shows the recap and handles its menu. done reports a successful
// submission.
func (r *Runner) review(ctx context.Context) (submission.Payload, bool, error) {
	sections := r.recap.Build(ctx, r.form.Snapshot())
	if err := r.info(ctx, recap.RenderText(sections)); err != nil {
		return submission.Payload{}, false, err
	}
	idx, err := r.driver.Select(ctx, SelectConfig{Message: MenuRecap, Options: recapActions})
	if err != nil {
		return submission.Payload{}, false, err
	}
	switch idx {
	case actionNext:
		return r.submit(ctx)
	case actionPrevious:
		r.nav.Previous()
	case actionGoTo:
		return submission.Payload{}, false, r.goTo(ctx)
	case actionQuit:
		return submission.Payload{}, false, ErrAborted
	}
	return submission.Payload{}, false, nil
}

func (r *Runner) submit(ctx context.Context) (submission.Payload, bool, error) {
	if r.submitter == nil {
		return submission.Payload{}, false, ErrNoSubmitter
	}
	payload, err := r.submitter.Submit(ctx, r.form)
	if err == nil {
		return payload, true, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return submission.Payload{}, false, ctxErr
	}
	r.logger.Debug("tui: submission failed", "error", err)
	for _, msg := range r.form.FormErrors() {
		if werr := r.warn(ctx, msg); werr != nil {
			return submission.Payload{}, false, werr
		}
	}
	// Jump back to the first step carrying field errors, if any.
	for i, step := range r.nav.Steps() {
		if len(r.form.StepErrors(step.ID)) == 0 {
			continue
		}
		if r.nav.GoTo(i) {
			return submission.Payload{}, false, r.showStepErrors(ctx, step.ID)
		}
		break
	}
	return submission.Payload{}, false, nil
}

func (r *Runner) promptStep(ctx context.Context, stepID string) error {
	switch stepID {
	case fiche.StepEtablissement:
		return r.promptEntity(ctx, entityPrompt{
			message:  "Type d'établissement",
			typePath: fiche.PathEtablissementType,
			idPath:   fiche.PathEtablissementExistantID,
			pick:     "Établissement existant",
			setType:  r.autofill.SetEtablissementType,
			choose:   r.autofill.SelectEtablissement,
			list: func(ctx context.Context) ([]fiche.Option, error) {
				page, err := r.dir.Etablissements(ctx, directory.Query{Limit: r.pageSize})
				return directory.EtablissementOptions(page.Data), err
			},
			fields: etablissementFields,
		})
	case fiche.StepEncadreur:
		return r.promptEntity(ctx, entityPrompt{
			message:  "Type d'encadreur",
			typePath: fiche.PathEncadreurType,
			idPath:   fiche.PathEncadreurExistantID,
			pick:     "Encadreur existant",
			setType:  r.autofill.SetEncadreurType,
			choose:   r.autofill.SelectEncadreur,
			list: func(ctx context.Context) ([]fiche.Option, error) {
				page, err := r.dir.Encadreurs(ctx, directory.Query{Limit: r.pageSize})
				return directory.EncadreurOptions(page.Data), err
			},
			fields: encadreurFields,
		})
	case fiche.StepStagiaire:
		return r.promptStagiaires(ctx)
	case fiche.StepSujet:
		return r.promptSujet(ctx)
	case fiche.StepAspectTechnique:
		return r.promptFields(ctx, aspectFields)
	default:
		return nil
	}
}

type entityPrompt struct {
	message  string
	typePath string
	idPath   string
	pick     string
	setType  func(fiche.EntityType) error
	choose   func(ctx context.Context, id string) error
	list     func(ctx context.Context) ([]fiche.Option, error)
	fields   []textField
}

func (r *Runner) promptEntity(ctx context.Context, p entityPrompt) error {
	current := fiche.EntityType(r.form.String(p.typePath))
	def := 0
	if current == fiche.EntityExistant {
		def = 1
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      p.message,
		Options:      []string{"Nouveau", "Existant"},
		DefaultIndex: def,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(entityTypes) {
		idx = def
	}
	chosen := entityTypes[idx]
	if chosen != current {
		if err := p.setType(chosen); err != nil {
			return err
		}
	}
	if chosen == fiche.EntityNouveau {
		return r.promptFields(ctx, p.fields)
	}

	opts, err := p.list(ctx)
	if err != nil {
		r.logger.Warn("tui: directory lookup failed", "field", p.idPath, "error", err)
	}
	var id string
	if len(opts) == 0 {
		id, err = r.driver.Input(ctx, InputConfig{
			Message:   p.pick,
			Default:   r.form.String(p.idPath),
			Help:      "Identifiant de l'enregistrement",
			Validator: requireText,
		})
	} else {
		id, err = r.selectOption(ctx, p.pick, "", opts, r.form.String(p.idPath))
	}
	if err != nil {
		return err
	}
	if err := p.choose(ctx, strings.TrimSpace(id)); err != nil {
		if werr := r.warn(ctx, "Impossible de charger l'enregistrement sélectionné."); werr != nil {
			return werr
		}
	}
	return r.showFieldErrors(ctx, p.idPath)
}

func (r *Runner) promptStagiaires(ctx context.Context) error {
	niveaux := levels.Levels()
	labels := make([]string, len(niveaux))
	current := levels.Normalize(r.form.String(fiche.PathStagiaireNiveau))
	def := 0
	for i, lvl := range niveaux {
		labels[i] = lvl.Label
		if lvl.Code == current {
			def = i
		}
	}
	idx, err := r.driver.Select(ctx, SelectConfig{Message: "Niveau d'étude", Options: labels, DefaultIndex: def})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(niveaux) {
		idx = def
	}
	niveau := niveaux[idx].Code
	if err := r.form.SetValue(fiche.PathStagiaireNiveau, niveau); err != nil {
		return err
	}

	parcours, err := r.promptChoice(ctx, fiche.PathStagiaireParcours, "Parcours", r.catalog.Parcours)
	if err != nil {
		return err
	}

	snap := r.form.Snapshot()
	page, err := r.dir.Inscriptions(ctx, directory.InscriptionQuery{
		Query:     directory.Query{Limit: r.pageSize},
		Niveau:    niveau,
		Parcours:  parcours,
		AnneeUniv: r.anneeUniv,
	})
	if err != nil {
		r.logger.Warn("tui: inscriptions unavailable", "niveau", niveau, "parcours", parcours, "error", err)
	}
	opts := withSelected(directory.InscriptionOptions(page.Data), snap.Stagiaire.Stagiaires)
	help := levels.Help(niveau)

	if len(opts) == 0 {
		answer, err := r.driver.Input(ctx, InputConfig{
			Message: "Stagiaire(s)",
			Default: strings.Join(snap.Stagiaire.Labels(), "; "),
			Help:    help + " Séparez les noms par « ; ».",
		})
		if err != nil {
			return err
		}
		if err := r.form.SetValue(fiche.PathStagiaires, splitList(answer)); err != nil {
			return err
		}
		return r.showFieldErrors(ctx, fiche.PathStagiaires)
	}

	selected := make(map[string]struct{}, len(snap.Stagiaire.Stagiaires))
	for _, s := range snap.Stagiaire.Stagiaires {
		selected[s.EnrollmentCode()] = struct{}{}
	}
	optLabels := make([]string, len(opts))
	var defaults []int
	for i, opt := range opts {
		optLabels[i] = opt.Label
		if _, ok := selected[opt.ID]; ok {
			defaults = append(defaults, i)
		}
	}
	picked, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  "Stagiaire(s)",
		Options:  optLabels,
		Defaults: defaults,
		Help:     help,
		PageSize: 10,
	})
	if err != nil {
		return err
	}
	chosen := make([]fiche.Option, 0, len(picked))
	for _, i := range picked {
		if i >= 0 && i < len(opts) {
			chosen = append(chosen, opts[i])
		}
	}
	if err := r.form.SetValue(fiche.PathStagiaires, chosen); err != nil {
		return err
	}
	return r.showFieldErrors(ctx, fiche.PathStagiaires)
}

func (r *Runner) promptSujet(ctx context.Context) error {
	if err := r.promptFields(ctx, []textField{{path: fiche.PathSujetTheme, label: "Thème"}}); err != nil {
		return err
	}
	if _, err := r.promptChoice(ctx, fiche.PathSujetOrientation, "Orientation", r.catalog.Specialites); err != nil {
		return err
	}
	return r.promptFields(ctx, []textField{
		{path: fiche.PathSujetObjectif, label: "Objectif", multiline: true},
		{path: fiche.PathSujetDescriptif, label: "Descriptif", multiline: true},
	})
}

// promptChoice asks for an enumerated value, or free text when the
// enumeration could not be loaded.
func (r *Runner) promptChoice(ctx context.Context, path, message string, opts []fiche.Option) (string, error) {
	current := r.form.String(path)
	var (
		value string
		err   error
	)
	if len(opts) == 0 {
		value, err = r.driver.Input(ctx, InputConfig{Message: message, Default: current})
	} else {
		value, err = r.selectOption(ctx, message, "", opts, current)
	}
	if err != nil {
		return "", err
	}
	value = strings.TrimSpace(value)
	if err := r.form.SetValue(path, value); err != nil {
		return "", err
	}
	return value, r.showFieldErrors(ctx, path)
}

func (r *Runner) selectOption(ctx context.Context, message, help string, opts []fiche.Option, current string) (string, error) {
	labels := make([]string, len(opts))
	def := 0
	for i, opt := range opts {
		labels[i] = opt.Label
		if opt.ID == current {
			def = i
		}
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      message,
		Options:      labels,
		DefaultIndex: def,
		Help:         help,
		PageSize:     10,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(opts) {
		return current, nil
	}
	return opts[idx].ID, nil
}

func (r *Runner) promptFields(ctx context.Context, fields []textField) error {
	for _, field := range fields {
		def := r.form.String(field.path)
		var (
			answer string
			err    error
		)
		if field.multiline {
			answer, err = r.driver.TextArea(ctx, TextAreaConfig{Message: field.label, Default: def, Help: field.help})
		} else {
			answer, err = r.driver.Input(ctx, InputConfig{Message: field.label, Default: def, Help: field.help})
		}
		if err != nil {
			return err
		}
		if err := r.form.SetValue(field.path, answer); err != nil {
			return err
		}
		if err := r.showFieldErrors(ctx, field.path); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) showFieldErrors(ctx context.Context, path string) error {
	for _, msg := range r.form.ErrorsFor(path) {
		if err := r.warn(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) showStepErrors(ctx context.Context, stepID string) error {
	errs := r.form.StepErrors(stepID)
	if len(errs) == 0 {
		return nil
	}
	if err := r.warn(ctx, "Veuillez corriger les erreurs avant de continuer :"); err != nil {
		return err
	}
	for _, path := range form.StepPaths(stepID) {
		for _, msg := range errs[path] {
			if err := r.warn(ctx, "  "+msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, prefixed(r.theme.InfoPrefix, msg))
}

func (r *Runner) warn(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, prefixed(r.theme.ErrorPrefix, msg))
}

func prefixed(prefix, msg string) string {
	if prefix == "" {
		return msg
	}
	return prefix + " " + msg
}

func requireText(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("valeur requise")
	}
	return nil
}

// withSelected appends current stagiaires missing from opts so a change of
// filter does not silently drop them from the picker.
func withSelected(opts []fiche.Option, current []fiche.Stagiaire) []fiche.Option {
	known := make(map[string]struct{}, len(opts))
	for _, opt := range opts {
		known[opt.ID] = struct{}{}
	}
	for _, s := range current {
		code := s.EnrollmentCode()
		if code == "" {
			continue
		}
		if _, ok := known[code]; ok {
			continue
		}
		known[code] = struct{}{}
		opts = append(opts, fiche.Option{ID: code, Label: s.Display()})
	}
	return opts
}

func splitList(s string) []string {
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
