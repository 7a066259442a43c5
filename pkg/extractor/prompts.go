package extractor

const ExtractPromptCase = `
# Task Context
You are tasked with extracting a **structured case graph** from the provided legal document text. The process must capture **all details explicitly present in the text**, without omission, and must not invent facts that are not in the text.

%s

# Detailed Task Description & Rules

## Person Extraction
1. Identify every person mentioned in the document (parties, children, judges only if they act as parties, third parties holding assets).
2. For each person, extract:
   - **name:** the fullest form of the name used in the text. If the text only uses a referring expression ("the husband", "the applicant"), use that expression as the name.
   - **description:** a comprehensive description of everything the text states about the person.
   - **aliases:** every other expression the text uses for the same person.
   - **roles:** the procedural or familial roles the text assigns ("Applicant", "Respondent", "Husband", "Wife", "Child").
   - **dob:** date of birth if stated, in YYYY-MM-DD form, otherwise omit.

## Object Extraction
1. Identify every asset or object with legal significance (properties, vehicles, accounts, funds, businesses, visas).
2. For each object, extract **name**, **type** (prefer the standard asset terms when applicable), **description**, and **aliases**.

## Timeline Extraction
1. Extract every dated or dateable occurrence as an event with:
   - **date:** YYYY-MM-DD if fully known, YYYY-MM or YYYY if partial, or the literal text ("circa 2020") if not parseable. Omit when no date at all is given.
   - **type:** a short label, preferring the standard event terms when applicable.
   - **description:** what happened, strictly from the text.
   - **participant_ids / object_ids:** the ids of the persons and objects involved.

## State Extraction
1. Extract time-bounded facts about a single person or object as states:
   - **entity_id:** the id of the entity the fact is about.
   - **name:** the attribute ("MaritalStatus", "Employment", "Residency", "Ownership").
   - **value:** the value that held ("Married", "Divorced", "Engineer at X").
   - **start_date / end_date:** when the fact began and ended, if stated. Mark **is_ongoing** true when the text presents the fact as still holding.

## Outcome Extraction
1. Extract every order, declaration, or disposition the document records, with **type** (prefer the standard outcome terms), **description**, the verbatim **orders** list, and **granted_to_ids** / **related_object_ids**.

## Identifiers
- Assign every person, object, event, and state a short unique **id** (e.g. "p1", "o1", "e1", "s1") and use those ids consistently in all reference lists.

# Document
**Document_id:** %s

**Text:**
%s
`
