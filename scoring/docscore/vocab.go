package docscore

// Curated vocabularies. Multi-word entries match across whitespace or hyphens.

var documentTypes = []string{
	"regulation", "directive", "guideline", "guidance", "standard", "policy",
	"procedure", "manual", "report", "certificate", "specification",
	"checklist", "form", "notice", "circular", "decree", "contract",
	"agreement", "memorandum", "framework", "code of practice",
	"standard operating procedure", "work instruction", "audit report",
	"risk register", "technical file", "declaration of conformity",
}

var domainTopics = []string{
	"data protection", "information security", "risk management",
	"quality management", "anti money laundering", "financial reporting",
	"occupational health and safety", "health and safety",
	"environmental protection", "business continuity", "incident response",
	"access control", "supply chain", "internal control", "record keeping",
	"change management", "vendor management", "clinical trial",
	"medical device", "product safety", "consumer protection",
	"cyber security", "privacy by design", "market surveillance",
	"capital requirements", "corporate governance", "waste management",
}

var domainConcepts = []string{
	"personal data", "data subject", "data controller", "data processor",
	"consent", "audit trail", "due diligence", "corrective action",
	"preventive action", "root cause", "risk assessment", "impact assessment",
	"segregation of duties", "encryption", "retention period",
	"breach notification", "know your customer", "conformity assessment",
	"traceability", "validation", "verification", "calibration",
	"non conformity", "management review", "internal audit",
	"legitimate interest", "lawful basis", "risk appetite",
	"key risk indicator", "control objective", "least privilege",
	"multi factor authentication", "business impact analysis",
}

var complianceTerms = []string{
	"compliance", "compliant", "non compliance", "mandatory", "required",
	"requirement", "shall", "must", "obligation", "regulatory", "audit",
	"certification", "accreditation", "approval", "enforcement", "penalty",
	"sanction", "violation", "breach", "reporting obligation", "supervisory authority",
}

var riskTerms = []string{
	"risk", "hazard", "threat", "vulnerability", "exposure", "likelihood",
	"impact", "severity", "mitigation", "residual risk", "inherent risk",
	"control", "incident", "failure", "loss", "fraud", "contingency",
}

var regulatoryClassTerms = []string{
	"regulation", "law", "directive", "act", "statute", "legal", "legislation",
	"compliance", "mandatory", "authority", "regulator", "enforcement",
	"obligation", "shall", "article", "penalty", "jurisdiction",
}

var proceduralClassTerms = []string{
	"procedure", "step", "process", "workflow", "instruction", "checklist",
	"review", "approve", "submit", "perform", "record", "complete", "sign",
	"escalate", "responsible",
}

var technicalClassTerms = []string{
	"system", "software", "encryption", "network", "configuration",
	"algorithm", "database", "interface", "protocol", "specification",
	"architecture", "server", "api", "firmware", "hardware", "log",
}

// Reference codes such as "ISO 27001", "GDPR Article 5" or "21 CFR 11".
var referencePattern = `(?i)\b(?:` +
	`(?:ISO|IEC|EN|BS|NIST|SP|FIPS|SOC|PCI[- ]?DSS|HIPAA|GDPR|SOX|DORA|NIS2?|MDR|IVDR)(?:[ /-]?\d+(?:[.:-]\d+)*)?\b` +
	`|\d+\s+CFR\s+\d+(?:\.\d+)*` +
	`|(?:article|art\.|section|annex|clause|chapter)\s+[0-9IVXLC]+(?:\.\d+)*(?:\([a-z0-9]+\))*` +
	`)\b`
