package corpus

import (
	"context"

	"NewsGuard/internal/domain"
	"NewsGuard/internal/ports"
)

// Bootstrap examples used when no dataset is available yet. Small but
// lexically polarized enough to train a usable first model.
var sampleFake = []string{
	"SHOCKING: Scientists discover miracle cure that doctors don't want you to know!",
	"BREAKING: Aliens confirmed by government officials in secret meeting!",
	"You won't believe what this celebrity said about politics, absolutely unbelievable scandal!",
	"This one weird trick will make you rich overnight, guaranteed miracle method!",
	"Government hiding the truth about this dangerous conspiracy, wake up people!",
	"EXPOSED: The secret they don't want you to see, shocking evidence inside!",
	"URGENT: Share this shocking report before it gets deleted forever!",
	"AMAZING discovery that will change everything, doctors hate this secret!",
	"Click here for the shocking truth they're hiding from you, urgent alert!",
	"BREAKING NEWS: Unbelievable revelation about famous person exposed in secret files!",
	"Miracle weight loss secret exposed, shocking results guaranteed overnight!",
	"ALERT: This urgent warning about vaccines is being hidden by the government!",
	"Secret documents expose the shocking truth about the miracle cure conspiracy!",
	"You will not believe this amazing secret trick, urgent breaking scandal revealed!",
	"EXPOSED: Shocking miracle remedy that big pharma keeps secret from the public!",
}

var sampleReal = []string{
	"According to recent studies published in Nature, researchers have made progress in understanding climate change.",
	"The university announced new findings in medical research conducted over three years.",
	"Economic indicators suggest steady growth in the manufacturing sector, experts report.",
	"Scientists at MIT have developed a new approach to renewable energy storage.",
	"Government officials announced policy changes following extensive public consultation.",
	"Research published in peer-reviewed journals indicates progress in cancer treatment.",
	"The Federal Reserve reported quarterly economic data showing moderate growth.",
	"Academic institutions collaborate on an international research project studying ocean currents.",
	"Public health officials provide updates on vaccination programs across the region.",
	"Technology companies announce new developments in software security research.",
	"Researchers at the university published a study on renewable energy adoption in rural areas.",
	"The ministry released its annual report on infrastructure spending and regional development.",
	"A study published in a medical journal describes incremental progress in diabetes research.",
	"Economists report that employment figures remained stable according to official statistics.",
	"The research council announced funding for studies on sustainable agriculture methods.",
}

// Sample returns the embedded bootstrap corpus.
func Sample() []domain.LabeledExample {
	examples := make([]domain.LabeledExample, 0, len(sampleFake)+len(sampleReal))
	for _, text := range sampleFake {
		examples = append(examples, domain.LabeledExample{Text: text, Label: domain.LabelFake})
	}
	for _, text := range sampleReal {
		examples = append(examples, domain.LabeledExample{Text: text, Label: domain.LabelReal})
	}
	return examples
}

// SampleSource serves the embedded corpus through the CorpusSource port.
type SampleSource struct{}

var _ ports.CorpusSource = SampleSource{}

// Load returns the embedded examples.
func (SampleSource) Load(ctx context.Context) ([]domain.LabeledExample, error) {
	return Sample(), ctx.Err()
}
