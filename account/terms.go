package account

// TermsInstruction tells the reasoning engine how to present the terms.
const TermsInstruction = "Present these terms to the user and ask them to type 'I agree' to accept."

// Terms is the fixed Terms & Conditions document, returned verbatim by the
// show_agreement tool.
const Terms = `APEX FINANCIAL — CHECKING ACCOUNT TERMS & CONDITIONS
Effective Date: January 1, 2026

1. ACCOUNT AGREEMENT — By opening a checking account with Apex Financial, you agree to these terms.
2. ELIGIBILITY — Must be 18+ and a legal U.S. resident.
3. ACCOUNT OWNERSHIP — Account held in name(s) provided during application.
4. DEPOSITS & WITHDRAWALS — Via direct deposit, mobile check deposit, wire transfer, debit card, ATM, or check.
5. FEES — Monthly Maintenance: $0 | ATM (non-network): $0 | Overdraft: $0 | Domestic Wire: $15 | International Wire: $30
6. ELECTRONIC COMMUNICATIONS — You consent to receive statements and notices electronically.
7. PRIVACY — Your personal information (including SSN) is securely stored and never sold to third parties.
8. FDIC INSURANCE — Deposits insured up to $250,000 per depositor.
9. ACCOUNT CLOSURE — You may close at any time; Bank may close with 30 days notice.
10. GOVERNING LAW — Governed by Delaware state and federal law.
11. DISPUTE RESOLUTION — Binding arbitration via American Arbitration Association.`
