package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/sales-automation/api/internal/contact"
	"github.com/octobees/sales-automation/api/internal/dto"
	"github.com/octobees/sales-automation/api/internal/entity"
	"github.com/octobees/sales-automation/api/internal/mailer"
	"github.com/octobees/sales-automation/api/internal/repository"
)

// CandidateSource produces candidates for campaign criteria.
type CandidateSource interface {
	Discover(ctx context.Context, criteria Criteria) ([]Candidate, error)
}

// LeadScorer qualifies candidates. Score and PainPoints never fail.
type LeadScorer interface {
	Score(ctx context.Context, cand Candidate, criteria Criteria) QualificationResult
	PainPoints(ctx context.Context, cand Candidate) []string
	IsQualified(score float64) bool
}

// EmailResolver finds a contact address for a company.
type EmailResolver interface {
	Resolve(ctx context.Context, req contact.Request) (string, bool)
}

// EmailWriter produces the outreach emails for a lead.
type EmailWriter interface {
	GenerateEmail(ctx context.Context, input PersonalizationInput, template string) EmailContent
	GenerateFollowUp(ctx context.Context, input PersonalizationInput, previousBody string, seq int) EmailContent
}

// Orchestrator runs a campaign end to end: discover, qualify, resolve
// contacts, persist the qualified leads and dispatch outreach emails.
// Per-lead failures are isolated; only campaign lookup and discovery are
// fatal to a run.
type Orchestrator struct {
	campaigns repository.CampaignsRepository
	leads     repository.LeadsRepository
	emails    repository.EmailsRepository

	source   CandidateSource
	scorer   LeadScorer
	resolver EmailResolver
	writer   EmailWriter
	sender   mailer.Sender

	baseURL       string
	useRealSearch bool
}

// NewOrchestrator wires a campaign runner.
func NewOrchestrator(
	campaigns repository.CampaignsRepository,
	leads repository.LeadsRepository,
	emails repository.EmailsRepository,
	source CandidateSource,
	scorer LeadScorer,
	resolver EmailResolver,
	writer EmailWriter,
	sender mailer.Sender,
	baseURL string,
	useRealSearch bool,
) *Orchestrator {
	return &Orchestrator{
		campaigns:     campaigns,
		leads:         leads,
		emails:        emails,
		source:        source,
		scorer:        scorer,
		resolver:      resolver,
		writer:        writer,
		sender:        sender,
		baseURL:       baseURL,
		useRealSearch: useRealSearch,
	}
}

// Run executes one full campaign pass and returns the run counters.
func (o *Orchestrator) Run(ctx context.Context, campaignID uuid.UUID) (dto.RunResult, error) {
	campaign, err := o.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return dto.RunResult{}, err
	}

	criteria := Criteria{
		Industry:    campaign.TargetCriteria.Industry,
		Location:    campaign.TargetCriteria.Location,
		CompanySize: campaign.TargetCriteria.CompanySize,
	}

	qualified, err := o.collectQualified(ctx, criteria)
	if err != nil {
		log.Printf("level=error msg=\"discovery failed\" campaign=%s error=%q", campaignID, err)
		return emptyRun(campaignID), nil
	}
	if len(qualified) == 0 {
		return emptyRun(campaignID), nil
	}

	created := o.persistLeads(ctx, campaign, qualified)

	emailsSent, emailsFailed := o.dispatchEmails(ctx, campaign, created)

	stats := repository.CampaignStats{
		TotalLeads:     len(qualified),
		QualifiedLeads: len(qualified),
		EmailsSent:     emailsSent,
		Status:         entity.CampaignStatusActive,
	}
	if err := o.campaigns.UpdateStats(ctx, campaign.ID, stats); err != nil {
		log.Printf("level=error msg=\"failed to update campaign stats\" campaign=%s error=%q", campaignID, err)
	}

	return dto.RunResult{
		CampaignID:   campaignID.String(),
		LeadsFound:   len(qualified),
		LeadsCreated: len(created),
		EmailsSent:   emailsSent,
		EmailsFailed: emailsFailed,
		Message:      fmt.Sprintf("Campaign executed: %d qualified leads, %d emails sent", len(qualified), emailsSent),
	}, nil
}

// collectQualified runs discovery and qualification and keeps only
// candidates at or above the campaign threshold.
func (o *Orchestrator) collectQualified(ctx context.Context, criteria Criteria) ([]QualifiedCandidate, error) {
	if !o.useRealSearch {
		var qualified []QualifiedCandidate
		for _, qc := range SyntheticCandidates(criteria) {
			if !o.scorer.IsQualified(qc.Qualification.Score) {
				continue
			}
			qc.Qualified = true
			qualified = append(qualified, qc)
		}
		return qualified, nil
	}

	candidates, err := o.source.Discover(ctx, criteria)
	if err != nil {
		return nil, err
	}

	var qualified []QualifiedCandidate
	for _, cand := range candidates {
		verdict := o.scorer.Score(ctx, cand, criteria)
		if !o.scorer.IsQualified(verdict.Score) {
			continue
		}

		email, _ := o.resolver.Resolve(ctx, contact.Request{
			CompanyName: cand.CompanyName,
			ContactName: cand.ContactName,
			Website:     cand.Website,
			Domain:      cand.Domain,
		})

		qualified = append(qualified, QualifiedCandidate{
			Candidate:     cand,
			Qualification: verdict,
			PainPoints:    o.scorer.PainPoints(ctx, cand),
			ContactEmail:  email,
			Qualified:     true,
		})
	}
	return qualified, nil
}

// persistLeads stores the qualified set. Individual insert failures are
// logged and skipped.
func (o *Orchestrator) persistLeads(ctx context.Context, campaign *entity.Campaign, qualified []QualifiedCandidate) []*entity.Lead {
	created := make([]*entity.Lead, 0, len(qualified))
	for i := range qualified {
		lead := leadFromQualified(campaign, &qualified[i])
		if err := o.leads.Create(ctx, lead); err != nil {
			log.Printf("level=error msg=\"failed to persist lead\" campaign=%s company=%q error=%q", campaign.ID, qualified[i].Candidate.CompanyName, err)
			continue
		}
		created = append(created, lead)
	}
	return created
}

// dispatchEmails personalizes and sends one email per lead. Leads without a
// resolvable address are skipped; unsubscribed leads are never contacted.
func (o *Orchestrator) dispatchEmails(ctx context.Context, campaign *entity.Campaign, leads []*entity.Lead) (sent, failed int) {
	for _, lead := range leads {
		if lead.IsUnsubscribed {
			continue
		}
		if lead.ContactEmail == nil || *lead.ContactEmail == "" {
			log.Printf("level=info msg=\"skipping lead without contact email\" lead=%s company=%q", lead.ID, lead.CompanyName)
			continue
		}

		token := lead.EnsureUnsubscribeToken()
		if err := o.leads.Update(ctx, lead); err != nil {
			log.Printf("level=error msg=\"failed to persist unsubscribe token\" lead=%s error=%q", lead.ID, err)
			failed++
			continue
		}

		content := o.writer.GenerateEmail(ctx, personalizationInput(lead), strPtrVal(campaign.EmailTemplate))
		body := mailer.ApplyUnsubscribe(content.Body, mailer.UnsubscribeLink(o.baseURL, token))

		msg := mailer.Message{
			To:       *lead.ContactEmail,
			Subject:  content.Subject,
			BodyText: body,
		}

		now := time.Now().UTC()
		sendErr := o.sender.Send(ctx, msg)
		o.recordAttempt(ctx, lead, msg, sendErr, now)

		if sendErr != nil {
			log.Printf("level=error msg=\"email send failed\" lead=%s to=%s error=%q", lead.ID, *lead.ContactEmail, sendErr)
			failed++
			continue
		}
		if err := o.leads.RecordSend(ctx, lead.ID, now); err != nil {
			log.Printf("level=error msg=\"failed to record send\" lead=%s error=%q", lead.ID, err)
		}
		if campaign.FollowUpEnabled && campaign.MaxFollowUps > 0 {
			next := now.AddDate(0, 0, followUpDelayDays(campaign, 1))
			lead.NextFollowUpAt = &next
			if err := o.leads.Update(ctx, lead); err != nil {
				log.Printf("level=error msg=\"failed to schedule follow-up\" lead=%s error=%q", lead.ID, err)
			}
		}
		sent++
	}
	return sent, failed
}

// RunFollowUps sends the next follow-up to every contacted lead of the
// campaign whose follow-up is due. The sequence number derives from the
// per-lead send counter, so a lead that received the initial email plus one
// follow-up is on sequence three.
func (o *Orchestrator) RunFollowUps(ctx context.Context, campaignID uuid.UUID) (dto.RunResult, error) {
	campaign, err := o.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return dto.RunResult{}, err
	}
	if !campaign.FollowUpEnabled {
		return dto.RunResult{
			CampaignID: campaignID.String(),
			Message:    "Follow-ups are disabled for this campaign",
		}, nil
	}

	leads, err := o.leads.ListByCampaign(ctx, campaignID)
	if err != nil {
		return dto.RunResult{}, err
	}

	now := time.Now().UTC()
	var sent, failed int
	for i := range leads {
		lead := &leads[i]
		if !followUpDue(campaign, lead, now) {
			continue
		}
		if o.sendFollowUp(ctx, campaign, lead, now) {
			sent++
		} else {
			failed++
		}
	}

	return dto.RunResult{
		CampaignID:   campaignID.String(),
		EmailsSent:   sent,
		EmailsFailed: failed,
		Message:      fmt.Sprintf("Follow-up pass complete: %d emails sent", sent),
	}, nil
}

// followUpDue reports whether lead should receive its next follow-up now.
// Leads that replied, bounced or opted out never get one.
func followUpDue(campaign *entity.Campaign, lead *entity.Lead, now time.Time) bool {
	if lead.IsUnsubscribed || lead.IsBounced || lead.EmailsReplied > 0 {
		return false
	}
	if lead.ContactEmail == nil || *lead.ContactEmail == "" {
		return false
	}
	if lead.EmailsSent == 0 {
		return false
	}
	seq := lead.EmailsSent
	if seq > campaign.MaxFollowUps {
		return false
	}

	var due time.Time
	switch {
	case lead.NextFollowUpAt != nil:
		due = *lead.NextFollowUpAt
	case lead.LastContactedAt != nil:
		due = lead.LastContactedAt.AddDate(0, 0, followUpDelayDays(campaign, seq))
	default:
		return false
	}
	return !now.Before(due)
}

func (o *Orchestrator) sendFollowUp(ctx context.Context, campaign *entity.Campaign, lead *entity.Lead, now time.Time) bool {
	seq := lead.EmailsSent

	var previousBody string
	if history, err := o.emails.ListByLead(ctx, lead.ID); err == nil {
		for _, rec := range history {
			if rec.Status == entity.EmailStatusSent {
				previousBody = rec.BodyText
				break
			}
		}
	}

	token := lead.EnsureUnsubscribeToken()
	content := o.writer.GenerateFollowUp(ctx, personalizationInput(lead), previousBody, seq)
	body := mailer.ApplyUnsubscribe(content.Body, mailer.UnsubscribeLink(o.baseURL, token))

	msg := mailer.Message{
		To:       *lead.ContactEmail,
		Subject:  content.Subject,
		BodyText: body,
	}

	sendErr := o.sender.Send(ctx, msg)
	o.recordAttempt(ctx, lead, msg, sendErr, now)
	if sendErr != nil {
		log.Printf("level=error msg=\"follow-up send failed\" lead=%s seq=%d error=%q", lead.ID, seq, sendErr)
		return false
	}

	if err := o.leads.RecordSend(ctx, lead.ID, now); err != nil {
		log.Printf("level=error msg=\"failed to record follow-up send\" lead=%s error=%q", lead.ID, err)
	}
	if seq+1 <= campaign.MaxFollowUps {
		next := now.AddDate(0, 0, followUpDelayDays(campaign, seq+1))
		lead.NextFollowUpAt = &next
	} else {
		lead.NextFollowUpAt = nil
	}
	if err := o.leads.Update(ctx, lead); err != nil {
		log.Printf("level=error msg=\"failed to reschedule follow-up\" lead=%s error=%q", lead.ID, err)
	}
	return true
}

// followUpDelayDays returns the wait before follow-up seq, in days. Delay
// lists shorter than the sequence repeat their last entry.
func followUpDelayDays(campaign *entity.Campaign, seq int) int {
	delays := campaign.FollowUpDelays
	if len(delays) == 0 {
		delays = []int{3, 7, 14}
	}
	if seq < 1 {
		seq = 1
	}
	if seq > len(delays) {
		return delays[len(delays)-1]
	}
	return delays[seq-1]
}

// recordAttempt stores the dispatch attempt row. Logging only on failure:
// the attempt log must never break a run.
func (o *Orchestrator) recordAttempt(ctx context.Context, lead *entity.Lead, msg mailer.Message, sendErr error, at time.Time) {
	record := &entity.Email{
		LeadID:    lead.ID,
		Subject:   msg.Subject,
		BodyText:  msg.BodyText,
		ToAddress: msg.To,
		Status:    entity.EmailStatusSent,
		SentAt:    &at,
	}
	if sendErr != nil {
		record.Status = entity.EmailStatusFailed
		errMsg := sendErr.Error()
		record.ErrorMsg = &errMsg
		record.SentAt = nil
	}
	if err := o.emails.Create(ctx, record); err != nil {
		log.Printf("level=error msg=\"failed to record email attempt\" lead=%s error=%q", lead.ID, err)
	}
}

func leadFromQualified(campaign *entity.Campaign, qc *QualifiedCandidate) *entity.Lead {
	cand := qc.Candidate
	score := qc.Qualification.Score
	quality := qc.Qualification.Quality

	lead := &entity.Lead{
		CampaignID:   &campaign.ID,
		CompanyName:  cand.CompanyName,
		QualityScore: &score,
		Quality:      &quality,
		Status:       entity.LeadStatusQualified,
	}
	lead.CompanyWebsite = strOrNil(cand.Website)
	lead.CompanyDomain = strOrNil(cand.Domain)
	lead.Industry = strOrNil(campaign.TargetCriteria.Industry)
	lead.CompanySize = strOrNil(campaign.TargetCriteria.CompanySize)
	lead.Location = strOrNil(campaign.TargetCriteria.Location)
	lead.Description = strOrNil(cand.Description)
	lead.ContactName = strOrNil(cand.ContactName)
	lead.ContactEmail = strOrNil(qc.ContactEmail)
	lead.Source = strOrNil(cand.Source)

	if qc.Qualification.Reasoning != "" || len(qc.PainPoints) > 0 {
		notes := qc.Qualification.Reasoning
		for _, p := range qc.PainPoints {
			if notes != "" {
				notes += "\n"
			}
			notes += "- " + p
		}
		lead.Notes = &notes
	}
	return lead
}

func personalizationInput(lead *entity.Lead) PersonalizationInput {
	return PersonalizationInput{
		CompanyName: lead.CompanyName,
		Industry:    strPtrVal(lead.Industry),
		ContactName: strPtrVal(lead.ContactName),
		Description: strPtrVal(lead.Description),
		PainPoints:  painPointsFromNotes(lead.Notes),
	}
}

func painPointsFromNotes(notes *string) []string {
	if notes == nil {
		return nil
	}
	var points []string
	for _, line := range strings.Split(*notes, "\n") {
		if strings.HasPrefix(line, "- ") {
			points = append(points, line[2:])
		}
	}
	return points
}

func emptyRun(campaignID uuid.UUID) dto.RunResult {
	return dto.RunResult{
		CampaignID: campaignID.String(),
		Message:    "No leads found matching the criteria",
	}
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strPtrVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
